package stats

import (
	"testing"
	"time"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

func fixtureSessions() []model.SessionRecord {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []model.SessionRecord{
		{
			EndedAt:    base,
			Score:      100,
			Reps:       10,
			Caught:     8,
			Missed:     2,
			BestHoldMs: 1500,
			MaxCombo:   3,
		},
		{
			EndedAt:    base.Add(24 * time.Hour),
			Score:      140,
			Reps:       12,
			Caught:     12,
			Missed:     0,
			BestHoldMs: 2100,
			MaxCombo:   5,
		},
	}
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(fixtureSessions())

	if s.Sessions != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Sessions)
	}
	if s.TotalReps != 22 {
		t.Fatalf("expected 22 total reps, got %d", s.TotalReps)
	}
	if s.BestScore != 140 {
		t.Fatalf("expected best score 140, got %d", s.BestScore)
	}
	if s.AvgScore != 120 {
		t.Fatalf("expected avg score 120, got %f", s.AvgScore)
	}
	if s.BestHoldMs != 2100 {
		t.Fatalf("expected best hold 2100ms, got %d", s.BestHoldMs)
	}
	if s.BestCombo != 5 {
		t.Fatalf("expected best combo 5, got %d", s.BestCombo)
	}
	if want := float64(20) / 22; s.CatchRate != want {
		t.Fatalf("expected catch rate %f, got %f", want, s.CatchRate)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(nil)
	if s.Sessions != 0 || s.AvgScore != 0 || s.CatchRate != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestCatchRate(t *testing.T) {
	if got := CatchRate(0, 0); got != 0 {
		t.Fatalf("expected 0 without attempts, got %f", got)
	}
	if got := CatchRate(3, 1); got != 0.75 {
		t.Fatalf("expected 0.75, got %f", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 5, 10}); got != " +@" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
}
