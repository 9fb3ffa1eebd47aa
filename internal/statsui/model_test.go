package statsui

import (
	"strings"
	"testing"
	"time"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

func browserFixture() []model.SessionRecord {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []model.SessionRecord{
		{EndedAt: base, Score: 100, Reps: 10, Caught: 8, Missed: 2, BestHoldMs: 1500, MaxCombo: 3},
		{EndedAt: base.Add(24 * time.Hour), Score: 180, Reps: 14, Caught: 12, Missed: 1, BestHoldMs: 2100, MaxCombo: 5},
	}
}

func TestSessionTableNewestFirst(t *testing.T) {
	tbl := buildSessionTable(browserFixture())
	rows := tbl.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "2026-03-02 09:00" {
		t.Fatalf("expected newest session first, got %q", rows[0][0])
	}
	if rows[0][1] != "180" || rows[0][6] != "2.1s" || rows[0][7] != "x5" {
		t.Fatalf("unexpected newest row contents: %v", rows[0])
	}
}

func TestViewIncludesSummary(t *testing.T) {
	m := NewModel(browserFixture())
	out := m.View()
	if !strings.Contains(out, "2 sessions") {
		t.Fatalf("expected session count in view, got:\n%s", out)
	}
	if !strings.Contains(out, "best score 180") {
		t.Fatalf("expected best score in view, got:\n%s", out)
	}
}

func TestViewEmptyHistory(t *testing.T) {
	m := NewModel(nil)
	if !strings.Contains(m.View(), "No sessions recorded yet") {
		t.Fatalf("expected empty-history message")
	}
}
