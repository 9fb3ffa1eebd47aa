package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Date", "Score", "Reps"}
	rows := [][]string{
		{"01-02 10:00", "120", "14"},
		{"01-03 09:30", "85", "9"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Date        Score Reps" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "01-02 10:00   120   14" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "01-03 09:30    85    9" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
