// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/game"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/store"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/tracker"
)

const (
	frameInterval = time.Second / 30
	toastVisible  = 3000 * time.Millisecond
	fieldWidth    = 44
	fieldHeight   = 16
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	fieldStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4A4A4A"))
	hudStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0"))
	toastStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6FCF6F")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	lostStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	catcherStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)

	categoryStyles = map[string]lipgloss.Style{
		"amber":   lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
		"jade":    lipgloss.NewStyle().Foreground(lipgloss.Color("#3AC87A")),
		"ruby":    lipgloss.NewStyle().Foreground(lipgloss.Color("#C83A4A")),
		"catcher": catcherStyle,
	}
)

// Notifier delivers a finished-session summary; delivery is best-effort.
type Notifier interface {
	SessionFinished(rec model.SessionRecord)
}

// frameMsg is the per-frame clock sample driving the simulation.
type frameMsg time.Time

// toast is a short-lived achievement notification.
type toast struct {
	text  string
	until time.Time
}

// Model implements the Bubble Tea game UI around the pure game core.
type Model struct {
	controller *game.Controller
	source     tracker.Source
	sourceName string
	manual     *tracker.ManualSource
	sim        *tracker.SimSource
	gate       *tracker.Gate
	store      *store.Store
	notifier   Notifier
	logger     *slog.Logger

	calBar  progress.Model
	snap    game.Snapshot
	toasts  []toast
	restart bool

	width  int
	height int
}

// NewModel wires the game controller to its collaborators. notifier may be
// nil; manual is non-nil only when the source accepts key pulses.
func NewModel(controller *game.Controller, source tracker.Source, sourceName string, gate *tracker.Gate, st *store.Store, notifier Notifier, logger *slog.Logger) *Model {
	m := &Model{
		controller: controller,
		source:     source,
		sourceName: sourceName,
		gate:       gate,
		store:      st,
		notifier:   notifier,
		logger:     logger,
		calBar:     progress.New(progress.WithDefaultGradient()),
	}
	if manual, ok := source.(*tracker.ManualSource); ok {
		m.manual = manual
	}
	if sim, ok := source.(*tracker.SimSource); ok {
		m.sim = sim
	}
	m.snap = controller.Snapshot()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			// Buffered; applied on the next tick, never mid-tick.
			m.restart = true
		case " ":
			if m.manual != nil {
				m.manual.Pulse()
			}
		case "m":
			if m.sim != nil {
				m.sim.ToggleMarker()
			}
		}
		return m, nil
	case frameMsg:
		m.frame(time.Time(msg))
		return m, frameTick()
	}
	return m, nil
}

// frame advances the simulation by one tick against a single clock sample.
func (m *Model) frame(now time.Time) {
drain:
	for {
		select {
		case s := <-m.source.Samples():
			m.gate.Observe(s)
		default:
			break drain
		}
	}
	status := m.gate.Update(now)

	in := game.TickInput{
		TrackingActive: status.Active,
		RawAngle:       status.Angle,
		Restart:        m.restart,
	}
	m.restart = false

	for _, ev := range m.controller.Tick(now, in) {
		m.handleEvent(ev, now)
	}
	m.snap = m.controller.Snapshot()
	m.expireToasts(now)
}

func (m *Model) handleEvent(ev game.Event, now time.Time) {
	switch ev := ev.(type) {
	case game.CalibrationDone:
		m.pushToast("Calibration complete", now)
	case game.RepCompleted:
		m.pushToast(fmt.Sprintf("Rep %d · hold %s", ev.Count, formatHold(ev.Hold)), now)
	case game.RepMilestone:
		m.pushToast(fmt.Sprintf("%d reps! Keep going", ev.Count), now)
	case game.ComboUp:
		m.pushToast(fmt.Sprintf("Combo x%d", ev.Combo), now)
	case game.ObjectCaught:
		m.pushToast(fmt.Sprintf("+%d", ev.Points), now)
	case game.SessionFinished:
		m.finishSession(ev.Record)
	}
}

// finishSession persists the record and fires the notifier. Neither may
// block or fail the transition to the results screen.
func (m *Model) finishSession(rec model.SessionRecord) {
	rec.Source = m.sourceName
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := m.store.InsertSession(ctx, rec); err != nil {
		m.logger.Warn("failed to save session", slog.Any("error", err))
	}
	if m.notifier != nil {
		go m.notifier.SessionFinished(rec)
	}
}

func (m *Model) pushToast(text string, now time.Time) {
	m.toasts = append(m.toasts, toast{text: text, until: now.Add(toastVisible)})
}

func (m *Model) expireToasts(now time.Time) {
	live := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.until) {
			live = append(live, t)
		}
	}
	m.toasts = live
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.snap.Phase {
	case game.PhaseWaiting:
		content = m.viewWaiting()
	case game.PhaseCalibrating:
		content = m.viewCalibrating()
	case game.PhasePlaying:
		content = m.viewPlaying()
	case game.PhaseGameOver:
		content = m.viewGameOver()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewWaiting() string {
	status := lostStyle.Render("marker not visible")
	if m.snap.Tracking {
		status = toastStyle.Render("marker acquired")
	}
	lines := []string{
		titleStyle.Render("Toe-Curl Catcher"),
		"",
		"Hold the marker steady to calibrate.",
		status,
		"",
		m.controls(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewCalibrating() string {
	lines := []string{
		titleStyle.Render("Calibrating"),
		"",
		"Keep your foot relaxed and the marker steady.",
		"",
		m.calBar.ViewAs(m.snap.Calibration),
		"",
		m.toastLine(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewPlaying() string {
	grid := fieldGrid(m.snap, fieldWidth, fieldHeight)
	rows := make([]string, len(grid))
	for y, line := range grid {
		var b strings.Builder
		for _, c := range line {
			if style, ok := categoryStyles[c.cat]; ok && c.r != ' ' {
				b.WriteString(style.Render(string(c.r)))
			} else {
				b.WriteRune(c.r)
			}
		}
		rows[y] = b.String()
	}
	field := fieldStyle.Render(strings.Join(rows, "\n"))

	hud := hudStyle.Render(centerLine(hudLine(m.snap), fieldWidth))
	toastRow := centerLine(m.toastLine(), fieldWidth)
	tracking := ""
	if !m.snap.Tracking {
		tracking = lostStyle.Render(centerLine("marker lost - exercise paused", fieldWidth))
	}
	parts := []string{field, hud, toastRow}
	if tracking != "" {
		parts = append(parts, tracking)
	}
	return strings.Join(parts, "\n")
}

func (m *Model) viewGameOver() string {
	lines := []string{
		titleStyle.Render("Session complete"),
		"",
		fmt.Sprintf("Score      %d", m.snap.Score),
		fmt.Sprintf("Reps       %d", m.snap.Reps),
		fmt.Sprintf("Caught     %d", m.snap.Caught),
		fmt.Sprintf("Missed     %d", m.snap.Missed),
		fmt.Sprintf("Best hold  %s", formatHold(m.snap.BestHold)),
		"",
		hintStyle.Render("r restart · q quit"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) toastLine() string {
	if len(m.toasts) == 0 {
		return ""
	}
	texts := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		texts = append(texts, t.text)
	}
	return toastStyle.Render(strings.Join(texts, "  "))
}

func (m *Model) controls() string {
	hints := []string{"q quit"}
	if m.sim != nil {
		hints = append([]string{"m hide/show marker"}, hints...)
	}
	if m.manual != nil {
		hints = append([]string{"space curl"}, hints...)
	}
	return hintStyle.Render(strings.Join(hints, " · "))
}
