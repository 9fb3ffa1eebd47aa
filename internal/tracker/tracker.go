// Package tracker provides curl-angle sources for the game.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

// Sample is one orientation reading reduced to the tracked axis.
type Sample struct {
	AngleDegrees float64
	Active       bool
	At           time.Time
}

// Source streams curl-angle samples. Start begins production, Samples
// delivers readings until Close; slow consumers may lose intermediate
// samples, never the most recent level for long.
type Source interface {
	Start(ctx context.Context) error
	Samples() <-chan Sample
	Close() error
}

// Pose is the wire representation pushed by phone and IMU senders.
type Pose struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Axis extracts one rotational axis from the pose. The curl angle is a
// single-axis reading; unknown names fall back to roll.
func (p Pose) Axis(name string) float64 {
	switch name {
	case "pitch":
		return p.Pitch
	case "yaw":
		return p.Yaw
	default:
		return p.Roll
	}
}

// New builds the source selected by the config.
func New(cfg model.TrackerConfig, logger *slog.Logger) (Source, error) {
	switch cfg.Source {
	case "sim":
		return NewSimSource(), nil
	case "manual":
		return NewManualSource(), nil
	case "mqtt":
		return NewMQTTSource(cfg, logger), nil
	case "ws":
		return NewWSSource(cfg, logger), nil
	case "serial":
		return NewSerialSource(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown tracker source %q", cfg.Source)
	}
}

// Status is the per-tick tracking level derived by a Gate, with edge flags
// for the update that produced it.
type Status struct {
	Angle    float64
	Active   bool
	Acquired bool
	Lost     bool
}

// Gate reduces a sample stream to a per-tick tracking level. A sample older
// than the staleness window counts as lost, so a silent sender drops the
// marker rather than freezing it forever.
type Gate struct {
	staleAfter time.Duration
	last       Sample
	has        bool
	active     bool
}

// NewGate builds a gate with the given staleness window.
func NewGate(staleAfter time.Duration) *Gate {
	return &Gate{staleAfter: staleAfter}
}

// Observe records a received sample. Call once per sample, in order.
func (g *Gate) Observe(s Sample) {
	g.last = s
	g.has = true
}

// Update computes the tracking level at now and reports rising and falling
// edges relative to the previous update.
func (g *Gate) Update(now time.Time) Status {
	active := g.has && g.last.Active && now.Sub(g.last.At) <= g.staleAfter
	st := Status{
		Angle:    g.last.AngleDegrees,
		Active:   active,
		Acquired: active && !g.active,
		Lost:     !active && g.active,
	}
	g.active = active
	return st
}
