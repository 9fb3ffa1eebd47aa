// Package tui provides the Bubble Tea game interface.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/game"
)

// Horizontal world range shown by the playfield. Objects spawn in a narrow
// band around the center; the margin keeps the catcher fully visible.
const (
	worldLeft  = -0.15
	worldRight = 0.15
)

const (
	objectGlyph  = '●'
	catcherGlyph = '═'
	catcherLeft  = '╘'
	catcherRight = '╛'
)

// cell is one playfield character plus the category that colors it.
type cell struct {
	r   rune
	cat string
}

// worldToCol maps a world x coordinate onto a playfield column.
func worldToCol(x float64, width int) int {
	if width <= 1 {
		return 0
	}
	pos := (x - worldLeft) / (worldRight - worldLeft)
	col := int(math.Round(pos * float64(width-1)))
	if col < 0 {
		col = 0
	}
	if col >= width {
		col = width - 1
	}
	return col
}

// worldToRow maps a world height onto a playfield row, top row at spawn
// height and bottom row at the floor.
func worldToRow(y float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (game.SpawnY - y) / (game.SpawnY - game.FloorY)
	row := int(math.Round(pos * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

// catcherHalfCols converts the catch radius to a column half-width, at
// least one column so the catcher is always visible.
func catcherHalfCols(radius float64, width int) int {
	half := int(math.Round(radius / (worldRight - worldLeft) * float64(width-1)))
	if half < 1 {
		half = 1
	}
	return half
}

// fieldGrid renders the snapshot into a character grid with the falling
// objects and the catcher placed at their mapped cells.
func fieldGrid(snap game.Snapshot, width, height int) [][]cell {
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}

	row := worldToRow(snap.CatcherY, height)
	center := worldToCol(0, width)
	half := catcherHalfCols(snap.CatchRadius, width)
	for dx := -half; dx <= half; dx++ {
		col := center + dx
		if col < 0 || col >= width {
			continue
		}
		glyph := catcherGlyph
		switch dx {
		case -half:
			glyph = catcherLeft
		case half:
			glyph = catcherRight
		}
		grid[row][col] = cell{r: glyph, cat: "catcher"}
	}

	for _, obj := range snap.Objects {
		r := worldToRow(obj.Height, height)
		c := worldToCol(obj.X, width)
		grid[r][c] = cell{r: objectGlyph, cat: obj.Category.Name}
	}
	return grid
}

// formatClock renders a remaining duration as mm:ss, clamped at zero.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// formatHold renders a hold duration in seconds with one decimal.
func formatHold(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// comboLabel renders the combo multiplier, empty while it is at baseline.
func comboLabel(combo int) string {
	if combo <= 1 {
		return ""
	}
	return fmt.Sprintf("x%d", combo)
}

// hudLine composes the one-line heads-up display under the playfield.
func hudLine(snap game.Snapshot) string {
	segments := []string{
		fmt.Sprintf("Score %d", snap.Score),
	}
	if label := comboLabel(snap.Combo); label != "" {
		segments = append(segments, label)
	}
	segments = append(segments,
		fmt.Sprintf("Reps %d", snap.Reps),
		fmt.Sprintf("Curl %d%%", int(math.Round(snap.Magnitude*100))),
		fmt.Sprintf("Hold %s (best %s)", formatHold(snap.CurrentHold), formatHold(snap.BestHold)),
		formatClock(snap.Remaining),
	)
	return strings.Join(segments, "  ")
}

// centerLine pads a string to the given display width, runewidth-aware.
func centerLine(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	right := width - w - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
