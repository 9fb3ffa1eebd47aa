package game

import (
	"testing"
	"time"
)

func runAngles(r *repTracker, start time.Time, step time.Duration, angles []float64) []Event {
	var events []Event
	for i, a := range angles {
		events = append(events, r.tick(start.Add(time.Duration(i)*step), a)...)
	}
	return events
}

func countReps(events []Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(RepCompleted); ok {
			n++
		}
	}
	return n
}

func TestRepSingleCycle(t *testing.T) {
	r := repTracker{threshold: 15}
	start := time.Unix(0, 0)

	events := runAngles(&r, start, 100*time.Millisecond, []float64{0, 10, 20, 25, 8, 5})

	if got := countReps(events); got != 1 {
		t.Fatalf("expected 1 rep, got %d", got)
	}
	if r.count != 1 {
		t.Fatalf("expected rep count 1, got %d", r.count)
	}
	if r.phase != RepNeutral {
		t.Fatalf("expected final phase neutral, got %s", r.phase)
	}
}

func TestRepFastMotionNotCounted(t *testing.T) {
	r := repTracker{threshold: 15}
	start := time.Unix(0, 0)

	events := runAngles(&r, start, 100*time.Millisecond, []float64{0, 30, 5})

	if got := countReps(events); got != 0 {
		t.Fatalf("expected 0 reps for motion without a plateau, got %d", got)
	}
	if r.phase != RepNeutral {
		t.Fatalf("expected final phase neutral, got %s", r.phase)
	}
}

func TestRepHoldDuration(t *testing.T) {
	r := repTracker{threshold: 15}
	start := time.Unix(0, 0)
	step := 100 * time.Millisecond

	events := runAngles(&r, start, step, []float64{20, 30, 30, 30, 8, 5})

	if got := countReps(events); got != 1 {
		t.Fatalf("expected 1 rep, got %d", got)
	}
	var rep RepCompleted
	for _, ev := range events {
		if rc, ok := ev.(RepCompleted); ok {
			rep = rc
		}
	}
	if rep.Hold != 2*step {
		t.Fatalf("expected hold %v, got %v", 2*step, rep.Hold)
	}
	if r.current != 0 {
		t.Fatalf("expected current hold reset to 0, got %v", r.current)
	}
	if r.best != 2*step {
		t.Fatalf("expected best hold %v, got %v", 2*step, r.best)
	}
}

func TestRepReleasingReturnsToCurled(t *testing.T) {
	r := repTracker{threshold: 15}
	start := time.Unix(0, 0)

	events := runAngles(&r, start, 100*time.Millisecond, []float64{20, 25, 8, 20, 8, 5})

	if got := countReps(events); got != 1 {
		t.Fatalf("expected 1 rep despite the release bounce, got %d", got)
	}
}

func TestRepHoldsWhenNoConditionMatches(t *testing.T) {
	r := repTracker{threshold: 15}
	start := time.Unix(0, 0)

	runAngles(&r, start, 100*time.Millisecond, []float64{20, 25, 8})
	if r.phase != RepReleasing {
		t.Fatalf("expected releasing, got %s", r.phase)
	}

	// 10 is neither below 0.5T nor above T, so the phase must hold.
	r.tick(start.Add(time.Second), 10)
	if r.phase != RepReleasing {
		t.Fatalf("expected phase to hold at releasing, got %s", r.phase)
	}
}

func TestRepMilestoneEveryTenth(t *testing.T) {
	r := repTracker{threshold: 15}
	now := time.Unix(0, 0)

	var milestones []RepMilestone
	for i := 0; i < 10; i++ {
		for _, a := range []float64{20, 25, 8, 5} {
			now = now.Add(100 * time.Millisecond)
			for _, ev := range r.tick(now, a) {
				if m, ok := ev.(RepMilestone); ok {
					milestones = append(milestones, m)
				}
			}
		}
	}

	if r.count != 10 {
		t.Fatalf("expected 10 reps, got %d", r.count)
	}
	if len(milestones) != 1 {
		t.Fatalf("expected 1 milestone, got %d", len(milestones))
	}
	if milestones[0].Count != 10 {
		t.Fatalf("expected milestone at rep 10, got %d", milestones[0].Count)
	}
}
