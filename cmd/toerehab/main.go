// Package main provides the CLI entrypoint for toerehab.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/config"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/game"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/notify"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/stats"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/statsui"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/store"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/tracker"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/tui"
)

const (
	defaultSource       = "sim"
	defaultAxis         = "roll"
	defaultStaleAfterMs = 700
	defaultDurationS    = 180
	defaultThreshold    = 15.0
	defaultMaxAngle     = 45.0
	defaultMQTTBroker   = "tcp://localhost:1883"
	defaultMQTTTopic    = "toerehab/pose"
	defaultMQTTClientID = "toerehab"
	defaultWSAddr       = ":8723"
	defaultWSPath       = "/pose"
	defaultSerialPort   = "/dev/ttyUSB0"
	defaultSerialBaud   = uint(115200)
)

var (
	playSource     string
	playAxis       string
	playStaleAfter int
	playDuration   int
	playThreshold  float64
	playMaxAngle   float64
	playSeed       int64
	playMQTTBroker string
	playMQTTTopic  string
	playWSAddr     string
	playSerialPort string
	playSerialBaud uint

	statsSince string
	statsLast  int
	statsPlot  bool
	statsUI    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "toerehab",
		Short:         "Motion-tracked toe-curl rehabilitation game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playSource, "source", defaultSource, "curl-angle source: sim, manual, mqtt, ws, serial")
	rootCmd.Flags().StringVar(&playAxis, "axis", defaultAxis, "tracked rotation axis: roll, pitch, yaw")
	rootCmd.Flags().IntVar(&playStaleAfter, "stale-after", defaultStaleAfterMs, "marker lost after this many ms without a sample")
	rootCmd.Flags().IntVar(&playDuration, "duration", defaultDurationS, "session length in seconds")
	rootCmd.Flags().Float64Var(&playThreshold, "curl-threshold", defaultThreshold, "rep threshold in degrees")
	rootCmd.Flags().Float64Var(&playMaxAngle, "max-curl-angle", defaultMaxAngle, "angle mapped to full curl, in degrees")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "spawn RNG seed (0 = time-based)")
	rootCmd.Flags().StringVar(&playMQTTBroker, "mqtt-broker", defaultMQTTBroker, "MQTT broker URL for the mqtt source")
	rootCmd.Flags().StringVar(&playMQTTTopic, "mqtt-topic", defaultMQTTTopic, "pose topic for the mqtt source")
	rootCmd.Flags().StringVar(&playWSAddr, "ws-addr", defaultWSAddr, "listen address for the ws source")
	rootCmd.Flags().StringVar(&playSerialPort, "serial-port", defaultSerialPort, "port for the serial source")
	rootCmd.Flags().UintVar(&playSerialBaud, "serial-baud", defaultSerialBaud, "baud rate for the serial source")

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "source", &playSource, fileCfg.Tracker.Source)
	applyStringConfig(cmd, "axis", &playAxis, fileCfg.Tracker.Axis)
	applyIntConfig(cmd, "stale-after", &playStaleAfter, fileCfg.Tracker.StaleAfter)
	applyIntConfig(cmd, "duration", &playDuration, fileCfg.Game.Duration)
	applyFloatConfig(cmd, "curl-threshold", &playThreshold, fileCfg.Game.CurlThreshold)
	applyFloatConfig(cmd, "max-curl-angle", &playMaxAngle, fileCfg.Game.MaxCurlAngle)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Game.Seed)
	applyStringConfig(cmd, "mqtt-broker", &playMQTTBroker, fileCfg.Tracker.MQTTBroker)
	applyStringConfig(cmd, "mqtt-topic", &playMQTTTopic, fileCfg.Tracker.MQTTTopic)
	applyStringConfig(cmd, "ws-addr", &playWSAddr, fileCfg.Tracker.WSAddr)
	applyStringConfig(cmd, "serial-port", &playSerialPort, fileCfg.Tracker.SerialPort)
	applyUintConfig(cmd, "serial-baud", &playSerialBaud, fileCfg.Tracker.SerialBaud)

	gameCfg, err := buildGameConfig(fileCfg.Game)
	if err != nil {
		return err
	}

	logger, logClose, err := newLogger(config.DefaultLogPath())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logClose()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	mqttClientID := defaultMQTTClientID
	if fileCfg.Tracker.MQTTClientID != nil {
		mqttClientID = *fileCfg.Tracker.MQTTClientID
	}
	wsPath := defaultWSPath
	if fileCfg.Tracker.WSPath != nil {
		wsPath = *fileCfg.Tracker.WSPath
	}
	trackerCfg := model.TrackerConfig{
		Source:       playSource,
		Axis:         playAxis,
		StaleAfterMs: playStaleAfter,
		MQTTBroker:   playMQTTBroker,
		MQTTTopic:    playMQTTTopic,
		MQTTClientID: mqttClientID,
		WSAddr:       playWSAddr,
		WSPath:       wsPath,
		SerialPort:   playSerialPort,
		SerialBaud:   playSerialBaud,
	}
	src, err := tracker.New(trackerCfg, logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := src.Start(ctx); err != nil {
		return fmt.Errorf("failed to start tracker source: %w", err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logErrf("failed to close tracker source: %v\n", cerr)
		}
	}()

	notifier := buildNotifier(fileCfg.Notify, logger)

	seed := playSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	controller := game.NewController(gameCfg, rng)
	gate := tracker.NewGate(time.Duration(playStaleAfter) * time.Millisecond)

	uiModel := tui.NewModel(controller, src, playSource, gate, st, notifier, logger)
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func buildGameConfig(fileGame config.GameConfig) (game.Config, error) {
	cfg := game.DefaultConfig()
	cfg.SessionDuration = time.Duration(playDuration) * time.Second
	cfg.CurlThreshold = playThreshold
	cfg.MaxCurlAngle = playMaxAngle
	if fileGame.CatchRadius != nil {
		cfg.CatchRadius = *fileGame.CatchRadius
	}
	if fileGame.SpawnInterval != nil {
		cfg.SpawnInterval = time.Duration(*fileGame.SpawnInterval) * time.Millisecond
	}
	if fileGame.SpawnDecay != nil {
		cfg.SpawnDecay = *fileGame.SpawnDecay
	}
	if fileGame.SpawnFloor != nil {
		cfg.SpawnFloor = time.Duration(*fileGame.SpawnFloor) * time.Millisecond
	}

	if cfg.SessionDuration <= 0 {
		return game.Config{}, fmt.Errorf("--duration must be > 0")
	}
	if cfg.CurlThreshold <= 0 {
		return game.Config{}, fmt.Errorf("--curl-threshold must be > 0")
	}
	if cfg.MaxCurlAngle < cfg.CurlThreshold {
		return game.Config{}, fmt.Errorf("--max-curl-angle must be >= --curl-threshold")
	}
	if cfg.SpawnDecay <= 0 || cfg.SpawnDecay > 1 {
		return game.Config{}, fmt.Errorf("spawn-decay must be in (0, 1]")
	}
	if cfg.CatchRadius <= 0 {
		return game.Config{}, fmt.Errorf("catch-radius must be > 0")
	}
	return cfg, nil
}

// buildNotifier returns nil unless a Telegram token and chat are configured.
// A notifier that fails to initialize is logged and skipped; a session must
// never fail because the summary could not be delivered.
func buildNotifier(cfg config.NotifyConfig, logger *slog.Logger) tui.Notifier {
	if cfg.TelegramToken == nil || *cfg.TelegramToken == "" || cfg.TelegramChatID == nil || *cfg.TelegramChatID == 0 {
		return nil
	}
	notifier, err := notify.NewTelegram(*cfg.TelegramToken, *cfg.TelegramChatID, logger)
	if err != nil {
		logErrf("failed to set up Telegram notifier: %v\n", err)
		return nil
	}
	return notifier
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelInfo}))
	closeFn := func() {
		if cerr := file.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}
	return logger, closeFn, nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history and trends",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().BoolVar(&statsPlot, "plot", false, "draw trend chart")
	cmd.Flags().BoolVar(&statsUI, "ui", false, "browse sessions interactively")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, model.StatsConfig{Since: sinceTime, Last: statsLast})
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if statsUI {
		program := tea.NewProgram(statsui.NewModel(report.Sessions), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	width := stats.TerminalWidth()
	if err := stats.Render(os.Stdout, report, width); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if statsPlot {
		series := stats.SessionSeries(report.Sessions)
		if err := stats.PlotSeries(os.Stdout, "Trend (oldest to newest)", series, stats.PlotWidthFor(width), 0); err != nil {
			return fmt.Errorf("failed to render plot: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyUintConfig(cmd *cobra.Command, name string, target, value *uint) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# toerehab configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# duration = %d           # Session length in seconds
# curl-threshold = %.1f   # Rep threshold in degrees
# max-curl-angle = %.1f   # Angle mapped to full curl, in degrees
# catch-radius = 0.075    # Catch distance in world units
# spawn-interval = 2000   # Initial spawn interval in ms
# spawn-decay = 0.98      # Interval multiplier after every spawn
# spawn-floor = 800       # Minimum spawn interval in ms
# seed = 0                # Spawn RNG seed (0 = time-based)

[tracker]
# source = %q             # sim, manual, mqtt, ws, serial
# axis = %q               # roll, pitch, yaw
# stale-after = %d        # Marker lost after this many ms without a sample
# mqtt-broker = %q
# mqtt-topic = %q
# mqtt-client-id = %q
# ws-addr = %q
# ws-path = %q
# serial-port = %q
# serial-baud = %d

[notify]
# telegram-token = ""     # Bot token; leave empty to disable
# telegram-chat-id = 0    # Chat to receive session summaries
`,
		defaultDurationS,
		defaultThreshold,
		defaultMaxAngle,
		defaultSource,
		defaultAxis,
		defaultStaleAfterMs,
		defaultMQTTBroker,
		defaultMQTTTopic,
		defaultMQTTClientID,
		defaultWSAddr,
		defaultWSPath,
		defaultSerialPort,
		defaultSerialBaud,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
