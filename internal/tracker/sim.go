// Package tracker provides curl-angle sources for the game.
package tracker

import (
	"context"
	"math"
	"sync"
	"time"
)

// Sim timing defaults. One cycle is a full curl and release.
const (
	simSamplePeriod = 20 * time.Millisecond
	simCyclePeriod  = 4 * time.Second
	simAmplitude    = 35.0
	simBaseline     = 10.0
	simDropEvery    = 25 * time.Second
	simDropFor      = 1500 * time.Millisecond
)

// SimSource generates smooth synthetic toe-curl cycles, with short periodic
// tracking dropouts to exercise the marker-lost paths.
type SimSource struct {
	samples chan Sample
	done    chan struct{}
	once    sync.Once

	mu     sync.Mutex
	hidden bool
}

// NewSimSource builds a simulated source.
func NewSimSource() *SimSource {
	return &SimSource{
		samples: make(chan Sample, 64),
		done:    make(chan struct{}),
	}
}

// Start launches the sample producer.
func (s *SimSource) Start(ctx context.Context) error {
	go s.run(ctx)
	return nil
}

// Samples returns the sample stream.
func (s *SimSource) Samples() <-chan Sample {
	return s.samples
}

// Close stops the producer.
func (s *SimSource) Close() error {
	s.once.Do(func() {
		close(s.done)
	})
	return nil
}

// ToggleMarker flips the simulated marker between visible and hidden.
func (s *SimSource) ToggleMarker() {
	s.mu.Lock()
	s.hidden = !s.hidden
	s.mu.Unlock()
}

// MarkerHidden reports whether the marker is currently forced hidden.
func (s *SimSource) MarkerHidden() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hidden
}

func (s *SimSource) run(ctx context.Context) {
	ticker := time.NewTicker(simSamplePeriod)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case now := <-ticker.C:
			elapsed := now.Sub(start)
			smp := Sample{
				AngleDegrees: simBaseline + simCurl(elapsed),
				Active:       !s.MarkerHidden() && !simDropout(elapsed),
				At:           now,
			}
			pushSample(s.samples, smp)
		}
	}
}

// simCurl maps elapsed time onto a smooth 0..amplitude curl cycle.
func simCurl(elapsed time.Duration) float64 {
	phase := 2 * math.Pi * float64(elapsed%simCyclePeriod) / float64(simCyclePeriod)
	return simAmplitude * (0.5 - 0.5*math.Cos(phase))
}

// simDropout reports whether the marker is hidden at this point of the run.
// The first dropout happens only after a full interval, so calibration and
// early play run undisturbed.
func simDropout(elapsed time.Duration) bool {
	return elapsed > simDropEvery && elapsed%simDropEvery < simDropFor
}

// pushSample delivers without blocking; a full buffer drops the sample.
func pushSample(ch chan Sample, s Sample) {
	select {
	case ch <- s:
	default:
	}
}
