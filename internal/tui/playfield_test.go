package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/game"
)

func TestWorldToColMapping(t *testing.T) {
	if got := worldToCol(worldLeft, 44); got != 0 {
		t.Fatalf("expected left edge at column 0, got %d", got)
	}
	if got := worldToCol(worldRight, 44); got != 43 {
		t.Fatalf("expected right edge at column 43, got %d", got)
	}
	center := worldToCol(0, 44)
	if center != 21 && center != 22 {
		t.Fatalf("expected center near the middle, got %d", center)
	}
	if got := worldToCol(1.0, 44); got != 43 {
		t.Fatalf("expected out-of-range x clamped, got %d", got)
	}
}

func TestWorldToRowMapping(t *testing.T) {
	if got := worldToRow(game.SpawnY, 16); got != 0 {
		t.Fatalf("expected spawn height at top row, got %d", got)
	}
	if got := worldToRow(game.FloorY, 16); got != 15 {
		t.Fatalf("expected floor at bottom row, got %d", got)
	}
	mid := worldToRow(0, 16)
	if mid < 7 || mid > 8 {
		t.Fatalf("expected mid height near the middle row, got %d", mid)
	}
}

func TestFieldGridPlacesObjectsAndCatcher(t *testing.T) {
	snap := game.Snapshot{
		CatcherY:    0,
		CatchRadius: 0.075,
		Objects: []game.Object{
			{Category: game.Categories[0], X: 0, Height: game.SpawnY},
		},
	}
	grid := fieldGrid(snap, 44, 16)

	objCol := worldToCol(0, 44)
	if grid[0][objCol].r != objectGlyph {
		t.Fatalf("expected object glyph at top row, got %q", grid[0][objCol].r)
	}
	if grid[0][objCol].cat != game.Categories[0].Name {
		t.Fatalf("expected object category %q, got %q", game.Categories[0].Name, grid[0][objCol].cat)
	}

	row := worldToRow(0, 16)
	center := worldToCol(0, 44)
	half := catcherHalfCols(0.075, 44)
	if grid[row][center].r != catcherGlyph {
		t.Fatalf("expected catcher body at center, got %q", grid[row][center].r)
	}
	if grid[row][center-half].r != catcherLeft || grid[row][center+half].r != catcherRight {
		t.Fatalf("expected catcher edges at ±%d columns", half)
	}
}

func TestFormatClock(t *testing.T) {
	if got := formatClock(2*time.Minute + 5*time.Second); got != "02:05" {
		t.Fatalf("expected 02:05, got %q", got)
	}
	if got := formatClock(0); got != "00:00" {
		t.Fatalf("expected 00:00, got %q", got)
	}
	if got := formatClock(-3 * time.Second); got != "00:00" {
		t.Fatalf("expected negative clamp to 00:00, got %q", got)
	}
}

func TestComboLabelSuppressedAtBaseline(t *testing.T) {
	if got := comboLabel(1); got != "" {
		t.Fatalf("expected empty label at combo 1, got %q", got)
	}
	if got := comboLabel(4); got != "x4" {
		t.Fatalf("expected x4, got %q", got)
	}
}

func TestHUDLine(t *testing.T) {
	snap := game.Snapshot{
		Score:       240,
		Combo:       3,
		Reps:        12,
		Magnitude:   0.64,
		CurrentHold: 1200 * time.Millisecond,
		BestHold:    2300 * time.Millisecond,
		Remaining:   151 * time.Second,
	}
	out := hudLine(snap)
	for _, want := range []string{"Score 240", "x3", "Reps 12", "Curl 64%", "Hold 1.2s (best 2.3s)", "02:31"} {
		if !strings.Contains(out, want) {
			t.Fatalf("HUD missing %q: %s", want, out)
		}
	}

	snap.Combo = 1
	if strings.Contains(hudLine(snap), "x1") {
		t.Fatalf("expected combo suppressed at baseline")
	}
}

func TestCenterLine(t *testing.T) {
	out := centerLine("ab", 6)
	if out != "  ab  " {
		t.Fatalf("expected centered string, got %q", out)
	}
	if got := centerLine("abcdef", 4); got != "abcdef" {
		t.Fatalf("expected no truncation, got %q", got)
	}
}

func TestToastExpiry(t *testing.T) {
	m := &Model{}
	base := time.Unix(0, 0)
	m.pushToast("Rep 1", base)
	m.expireToasts(base.Add(toastVisible - time.Millisecond))
	if len(m.toasts) != 1 {
		t.Fatalf("expected toast still visible")
	}
	m.expireToasts(base.Add(toastVisible))
	if len(m.toasts) != 0 {
		t.Fatalf("expected toast expired")
	}
}
