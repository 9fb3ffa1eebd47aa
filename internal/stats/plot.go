// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisGutter        = " | "
	axisLabelHigh     = "high"
	axisLabelLow      = "low"
)

// Series is a named value sequence for the trend plot. Each series is
// scaled to the plot height independently; the legend carries its range.
type Series struct {
	Name   string
	Values []float64
}

// SessionSeries extracts the plottable trend series from the history.
func SessionSeries(sessions []model.SessionRecord) []Series {
	scores := make([]float64, len(sessions))
	rates := make([]float64, len(sessions))
	holds := make([]float64, len(sessions))
	for i, rec := range sessions {
		scores[i] = float64(rec.Score)
		rates[i] = CatchRate(rec.Caught, rec.Missed) * 100
		holds[i] = float64(rec.BestHoldMs) / 1000
	}
	return []Series{
		{Name: "score", Values: scores},
		{Name: "catch %", Values: rates},
		{Name: "best hold s", Values: holds},
	}
}

// PlotSeries renders a braille line chart of the series. Series with fewer
// than two points are skipped; nothing is written when none remain.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	plottable := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) >= 2 {
			plottable = append(plottable, s)
		}
	}
	if len(plottable) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	grid := make([][]uint8, height)
	for y := range grid {
		grid[y] = make([]uint8, width)
	}
	for _, s := range plottable {
		plotOne(grid, s.Values, width, height)
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	gutter := utf8.RuneCountInString(axisLabelHigh)
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = axisLabelHigh
		case height - 1:
			label = axisLabelLow
		}
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", gutter, label, axisGutter))
		for x := 0; x < width; x++ {
			row.WriteRune(rune(0x2800 + int(grid[y][x])))
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	for _, s := range plottable {
		lo, hi := seriesRange(s.Values)
		if _, err := fmt.Fprintf(w, "%s: %.1f .. %.1f\n", s.Name, lo, hi); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// PlotWidthFor computes the plot width that fits a terminal of totalWidth.
func PlotWidthFor(totalWidth int) int {
	gutter := utf8.RuneCountInString(axisLabelHigh) + utf8.RuneCountInString(axisGutter)
	width := totalWidth - gutter
	if width < minPlotWidth {
		width = minPlotWidth
	}
	return width
}

// plotOne scales one series onto the dot grid (2 dots per cell column,
// 4 per cell row) and connects consecutive points with line segments.
func plotOne(grid [][]uint8, values []float64, width, height int) {
	lo, hi := seriesRange(values)
	if hi-lo < 1e-9 {
		lo--
		hi++
	}
	dotsX := width * 2
	dotsY := height * 4
	prevX, prevY := -1, -1
	for i, v := range values {
		x := i * (dotsX - 1) / (len(values) - 1)
		pos := (v - lo) / (hi - lo)
		y := int(math.Round((1 - pos) * float64(dotsY-1)))
		if prevX >= 0 {
			rasterize(prevX, prevY, x, y, func(dx, dy int) {
				setDot(grid, dx, dy)
			})
		} else {
			setDot(grid, x, y)
		}
		prevX, prevY = x, y
	}
}

func seriesRange(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// rasterize walks the dot positions of the segment (Bresenham).
func rasterize(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func setDot(grid [][]uint8, x, y int) {
	cellY, cellX := y/4, x/2
	if cellY < 0 || cellY >= len(grid) || cellX < 0 || cellX >= len(grid[cellY]) {
		return
	}
	grid[cellY][cellX] |= brailleDot(x%2, y%4)
}

// brailleDot maps an in-cell dot coordinate to its bit in U+2800..U+28FF.
func brailleDot(x, y int) uint8 {
	masks := [2][4]uint8{
		{0x01, 0x02, 0x04, 0x40},
		{0x08, 0x10, 0x20, 0x80},
	}
	if x < 0 || x > 1 || y < 0 || y > 3 {
		return 0
	}
	return masks[x][y]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
