// Package game implements the exercise game core.
package game

import "time"

// Reference is the calibrated zero-point orientation.
type Reference struct {
	Angle float64
	At    time.Time
}

// calibrator measures a timed capture window. Completion is reported exactly
// once; losing tracking before then aborts the capture.
type calibrator struct {
	window    time.Duration
	startedAt time.Time
	done      bool
}

func (c *calibrator) begin(now time.Time) {
	c.startedAt = now
	c.done = false
}

// tick returns capture progress in [0, 1]. done is set only on the tick the
// window first elapses; aborted is set when tracking drops beforehand.
func (c *calibrator) tick(now time.Time, trackingActive bool) (progress float64, done, aborted bool) {
	if !trackingActive {
		return 0, false, true
	}
	progress = float64(now.Sub(c.startedAt)) / float64(c.window)
	if progress < 0 {
		progress = 0
	}
	if progress >= 1 {
		progress = 1
		if !c.done {
			c.done = true
			done = true
		}
	}
	return progress, done, false
}
