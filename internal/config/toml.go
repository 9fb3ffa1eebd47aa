// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game    GameConfig    `toml:"game"`
	Tracker TrackerConfig `toml:"tracker"`
	Notify  NotifyConfig  `toml:"notify"`
}

// GameConfig maps gameplay settings.
type GameConfig struct {
	Duration      *int     `toml:"duration"`
	CurlThreshold *float64 `toml:"curl-threshold"`
	MaxCurlAngle  *float64 `toml:"max-curl-angle"`
	CatchRadius   *float64 `toml:"catch-radius"`
	SpawnInterval *int     `toml:"spawn-interval"`
	SpawnDecay    *float64 `toml:"spawn-decay"`
	SpawnFloor    *int     `toml:"spawn-floor"`
	Seed          *int64   `toml:"seed"`
}

// TrackerConfig maps angle-source settings.
type TrackerConfig struct {
	Source       *string `toml:"source"`
	Axis         *string `toml:"axis"`
	StaleAfter   *int    `toml:"stale-after"`
	MQTTBroker   *string `toml:"mqtt-broker"`
	MQTTTopic    *string `toml:"mqtt-topic"`
	MQTTClientID *string `toml:"mqtt-client-id"`
	WSAddr       *string `toml:"ws-addr"`
	WSPath       *string `toml:"ws-path"`
	SerialPort   *string `toml:"serial-port"`
	SerialBaud   *uint   `toml:"serial-baud"`
}

// NotifyConfig maps session-summary notification settings.
type NotifyConfig struct {
	TelegramToken  *string `toml:"telegram-token"`
	TelegramChatID *int64  `toml:"telegram-chat-id"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
