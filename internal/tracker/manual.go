// Package tracker provides curl-angle sources for the game.
package tracker

import (
	"context"
	"sync"
	"time"
)

// Manual motion tuning. Holding the pulse key curls at riseRate; releasing
// lets the angle settle back at fallRate.
const (
	manualSamplePeriod = 20 * time.Millisecond
	manualMaxAngle     = 35.0
	manualRiseRate     = 120.0
	manualFallRate     = 60.0
	manualHoldWindow   = 250 * time.Millisecond
)

// ManualSource drives the curl angle from key impulses, for play without
// any sensor attached.
type ManualSource struct {
	samples chan Sample
	done    chan struct{}
	once    sync.Once

	mu      sync.Mutex
	pulseAt time.Time
}

// NewManualSource builds a key-driven source.
func NewManualSource() *ManualSource {
	return &ManualSource{
		samples: make(chan Sample, 64),
		done:    make(chan struct{}),
	}
}

// Pulse registers a key impulse. Repeated pulses keep the curl rising.
func (m *ManualSource) Pulse() {
	m.mu.Lock()
	m.pulseAt = time.Now()
	m.mu.Unlock()
}

// Start launches the sample producer.
func (m *ManualSource) Start(ctx context.Context) error {
	go m.run(ctx)
	return nil
}

// Samples returns the sample stream.
func (m *ManualSource) Samples() <-chan Sample {
	return m.samples
}

// Close stops the producer.
func (m *ManualSource) Close() error {
	m.once.Do(func() {
		close(m.done)
	})
	return nil
}

func (m *ManualSource) run(ctx context.Context) {
	ticker := time.NewTicker(manualSamplePeriod)
	defer ticker.Stop()
	angle := 0.0
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.done:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			m.mu.Lock()
			pulseAt := m.pulseAt
			m.mu.Unlock()
			angle = manualStep(angle, dt, now.Sub(pulseAt) < manualHoldWindow)
			pushSample(m.samples, Sample{AngleDegrees: angle, Active: true, At: now})
		}
	}
}

// manualStep advances the angle by dt seconds, rising while held and
// settling toward neutral otherwise.
func manualStep(angle, dt float64, held bool) float64 {
	if held {
		angle += manualRiseRate * dt
		if angle > manualMaxAngle {
			angle = manualMaxAngle
		}
		return angle
	}
	angle -= manualFallRate * dt
	if angle < 0 {
		angle = 0
	}
	return angle
}
