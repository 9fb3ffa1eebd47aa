package tracker

import (
	"testing"
	"time"
)

func TestGateEdgesAndStaleness(t *testing.T) {
	gate := NewGate(700 * time.Millisecond)
	base := time.Unix(0, 0)

	st := gate.Update(base)
	if st.Active || st.Acquired || st.Lost {
		t.Fatalf("expected inactive gate before any sample, got %+v", st)
	}

	gate.Observe(Sample{AngleDegrees: 12, Active: true, At: base})
	st = gate.Update(base.Add(10 * time.Millisecond))
	if !st.Active || !st.Acquired {
		t.Fatalf("expected acquired edge on first active sample, got %+v", st)
	}
	if st.Angle != 12 {
		t.Fatalf("expected angle 12, got %v", st.Angle)
	}

	// Still fresh: active, no edge.
	st = gate.Update(base.Add(500 * time.Millisecond))
	if !st.Active || st.Acquired || st.Lost {
		t.Fatalf("expected steady active state, got %+v", st)
	}

	// Sender goes silent: the stale sample counts as lost.
	st = gate.Update(base.Add(900 * time.Millisecond))
	if st.Active || !st.Lost {
		t.Fatalf("expected lost edge after staleness window, got %+v", st)
	}

	// Reacquire.
	gate.Observe(Sample{AngleDegrees: 3, Active: true, At: base.Add(1 * time.Second)})
	st = gate.Update(base.Add(1100 * time.Millisecond))
	if !st.Active || !st.Acquired {
		t.Fatalf("expected reacquired edge, got %+v", st)
	}
}

func TestGateInactiveSample(t *testing.T) {
	gate := NewGate(700 * time.Millisecond)
	base := time.Unix(0, 0)

	gate.Observe(Sample{AngleDegrees: 5, Active: true, At: base})
	if st := gate.Update(base); !st.Active {
		t.Fatalf("expected active after active sample")
	}
	gate.Observe(Sample{AngleDegrees: 5, Active: false, At: base.Add(20 * time.Millisecond)})
	st := gate.Update(base.Add(30 * time.Millisecond))
	if st.Active || !st.Lost {
		t.Fatalf("expected lost edge on marker-hidden sample, got %+v", st)
	}
}

func TestPoseAxis(t *testing.T) {
	p := Pose{Roll: 1, Pitch: 2, Yaw: 3}
	if got := p.Axis("roll"); got != 1 {
		t.Fatalf("expected roll 1, got %v", got)
	}
	if got := p.Axis("pitch"); got != 2 {
		t.Fatalf("expected pitch 2, got %v", got)
	}
	if got := p.Axis("yaw"); got != 3 {
		t.Fatalf("expected yaw 3, got %v", got)
	}
	if got := p.Axis(""); got != 1 {
		t.Fatalf("expected fallback to roll, got %v", got)
	}
}

func TestManualStepRisesAndSettles(t *testing.T) {
	angle := manualStep(0, 0.1, true)
	if angle <= 0 {
		t.Fatalf("expected rise while held, got %v", angle)
	}
	angle = manualStep(manualMaxAngle, 1, true)
	if angle != manualMaxAngle {
		t.Fatalf("expected clamp at max angle, got %v", angle)
	}
	angle = manualStep(5, 10, false)
	if angle != 0 {
		t.Fatalf("expected settle to neutral, got %v", angle)
	}
}

func TestSimCurlCycle(t *testing.T) {
	if got := simCurl(0); got != 0 {
		t.Fatalf("expected neutral at cycle start, got %v", got)
	}
	peak := simCurl(simCyclePeriod / 2)
	if peak < simAmplitude-1e-9 {
		t.Fatalf("expected full curl at half cycle, got %v", peak)
	}
	if simDropout(10 * time.Second) {
		t.Fatalf("expected no dropout before the first interval")
	}
	if !simDropout(25*time.Second + 500*time.Millisecond) {
		t.Fatalf("expected dropout just after the interval")
	}
}

func TestSimToggleMarker(t *testing.T) {
	s := NewSimSource()
	if s.MarkerHidden() {
		t.Fatalf("expected marker visible at start")
	}
	s.ToggleMarker()
	if !s.MarkerHidden() {
		t.Fatalf("expected marker hidden after toggle")
	}
	s.ToggleMarker()
	if s.MarkerHidden() {
		t.Fatalf("expected marker visible after second toggle")
	}
}
