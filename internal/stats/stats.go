// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
)

// Summary aggregates the stored session history.
type Summary struct {
	Sessions    int
	TotalReps   int
	TotalScore  int
	BestScore   int
	AvgScore    float64
	TotalCaught int
	TotalMissed int
	CatchRate   float64
	BestHoldMs  int64
	BestCombo   int
}

// BuildSummary computes aggregate metrics over the session history.
func BuildSummary(sessions []model.SessionRecord) Summary {
	var s Summary
	s.Sessions = len(sessions)
	for _, rec := range sessions {
		s.TotalReps += rec.Reps
		s.TotalScore += rec.Score
		s.TotalCaught += rec.Caught
		s.TotalMissed += rec.Missed
		if rec.Score > s.BestScore {
			s.BestScore = rec.Score
		}
		if rec.BestHoldMs > s.BestHoldMs {
			s.BestHoldMs = rec.BestHoldMs
		}
		if rec.MaxCombo > s.BestCombo {
			s.BestCombo = rec.MaxCombo
		}
	}
	if s.Sessions > 0 {
		s.AvgScore = float64(s.TotalScore) / float64(s.Sessions)
	}
	s.CatchRate = CatchRate(s.TotalCaught, s.TotalMissed)
	return s
}

// CatchRate returns the caught fraction in [0, 1], or 0 without attempts.
func CatchRate(caught, missed int) float64 {
	total := caught + missed
	if total <= 0 {
		return 0
	}
	return float64(caught) / float64(total)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints aggregate metrics for the session history.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Sessions == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", s.Sessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total Reps: %d\n", s.TotalReps); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Score: %d\n", s.BestScore); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Score: %.1f\n", s.AvgScore); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Catch Rate: %.1f%%\n", s.CatchRate*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Hold: %s\n", formatHold(s.BestHoldMs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Combo: x%d\n", s.BestCombo); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderTrends prints score and catch-rate sparklines across sessions.
func RenderTrends(w io.Writer, sessions []model.SessionRecord, width int) error {
	if len(sessions) < 2 {
		return nil
	}
	scores := make([]float64, len(sessions))
	rates := make([]float64, len(sessions))
	for i, rec := range sessions {
		scores[i] = float64(rec.Score)
		rates[i] = CatchRate(rec.Caught, rec.Missed) * 100
	}
	rates = MovingAverage(rates, 5)

	label := len("Catch Rate ")
	if width > label+1 {
		if max := width - label; len(scores) > max {
			scores = scores[len(scores)-max:]
			rates = rates[len(rates)-max:]
		}
	}
	if _, err := fmt.Fprintln(w, "Trend (oldest to newest)"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Score      %s\n", Sparkline(scores)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Catch Rate %s\n", Sparkline(rates)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderHistory prints the per-session table.
func RenderHistory(w io.Writer, sessions []model.SessionRecord) error {
	if len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	headers := []string{"Date", "Score", "Reps", "Caught", "Missed", "Catch %", "Best Hold", "Combo"}
	rows := make([][]string, 0, len(sessions))
	for _, rec := range sessions {
		rows = append(rows, []string{
			rec.EndedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", rec.Score),
			fmt.Sprintf("%d", rec.Reps),
			fmt.Sprintf("%d", rec.Caught),
			fmt.Sprintf("%d", rec.Missed),
			fmt.Sprintf("%.0f%%", CatchRate(rec.Caught, rec.Missed)*100),
			formatHold(rec.BestHoldMs),
			fmt.Sprintf("x%d", rec.MaxCombo),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// TerminalWidth returns the stdout width or a fixed fallback.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func formatHold(ms int64) string {
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
