// Package game implements the exercise game core.
package game

import "time"

// RepPhase is the repetition classifier's current phase.
type RepPhase int

// Repetition phases. A rep is the full cycle back to RepNeutral.
const (
	RepNeutral RepPhase = iota
	RepCurling
	RepCurled
	RepReleasing
)

func (p RepPhase) String() string {
	switch p {
	case RepNeutral:
		return "neutral"
	case RepCurling:
		return "curling"
	case RepCurled:
		return "curled"
	case RepReleasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// repTracker classifies the zero-referenced curl angle into discrete
// repetitions. Transition conditions are multiples of the base threshold,
// evaluated in fixed order with the first match winning; at most one
// transition fires per tick, so a fast motion cannot skip the curled phase.
type repTracker struct {
	threshold float64
	phase     RepPhase
	holdStart time.Time
	current   time.Duration
	best      time.Duration
	count     int
}

func (r *repTracker) reset() {
	r.phase = RepNeutral
	r.holdStart = time.Time{}
	r.current = 0
	r.best = 0
	r.count = 0
}

func (r *repTracker) tick(now time.Time, angle float64) []Event {
	t := r.threshold
	switch r.phase {
	case RepNeutral:
		if angle > t {
			r.phase = RepCurling
		}
	case RepCurling:
		switch {
		case angle > 1.5*t:
			r.phase = RepCurled
			r.holdStart = now
		case angle < 0.5*t:
			r.phase = RepNeutral
		}
	case RepCurled:
		if angle < 0.7*t {
			r.phase = RepReleasing
		} else {
			r.current = now.Sub(r.holdStart)
			if r.current > r.best {
				r.best = r.current
			}
		}
	case RepReleasing:
		switch {
		case angle < 0.5*t:
			r.phase = RepNeutral
			r.count++
			events := []Event{RepCompleted{Count: r.count, Hold: r.current}}
			if r.count%10 == 0 {
				events = append(events, RepMilestone{Count: r.count})
			}
			r.current = 0
			return events
		case angle > t:
			r.phase = RepCurled
		}
	}
	return nil
}
