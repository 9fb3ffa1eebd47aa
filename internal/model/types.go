// Package model defines shared data structures.
package model

import "time"

// TrackerConfig selects and tunes the curl-angle source.
type TrackerConfig struct {
	Source       string
	Axis         string
	StaleAfterMs int
	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string
	WSAddr       string
	WSPath       string
	SerialPort   string
	SerialBaud   uint
}

// NotifyConfig defines the optional session-summary notifier.
type NotifyConfig struct {
	TelegramToken  string
	TelegramChatID int64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since *time.Time
	Last  int
}

// SessionRecord captures a completed game session. ID is assigned by the
// store on insert.
type SessionRecord struct {
	ID              string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	Score           int
	Reps            int
	BestHoldMs      int64
	Caught          int
	Missed          int
	MaxCombo        int
	Source          string
}
