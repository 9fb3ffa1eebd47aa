package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/tracker"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMarkerToggleKey(t *testing.T) {
	sim := tracker.NewSimSource()
	m := &Model{sim: sim}

	m.Update(keyMsg('m'))
	if !sim.MarkerHidden() {
		t.Fatalf("expected marker hidden after pressing m")
	}
	m.Update(keyMsg('m'))
	if sim.MarkerHidden() {
		t.Fatalf("expected marker visible after pressing m again")
	}
}

func TestMarkerToggleKeyIgnoredWithoutSim(t *testing.T) {
	m := &Model{}
	// Must be a no-op when the source has no marker to hide.
	m.Update(keyMsg('m'))
}
