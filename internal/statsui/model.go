// Package statsui provides the Bubble Tea session-history browser.
package statsui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
	"github.com/skxlly-cyber/ar-toe-rehab/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	summaryLine = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements an interactive scrollable view of the session history.
type Model struct {
	sessions []model.SessionRecord
	summary  stats.Summary
	table    table.Model
	width    int
	height   int
}

// NewModel builds the browser over an already-loaded history, newest last.
func NewModel(sessions []model.SessionRecord) *Model {
	m := &Model{
		sessions: sessions,
		summary:  stats.BuildSummary(sessions),
	}
	m.table = buildSessionTable(sessions)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		if msg.Height > 6 {
			m.table.SetHeight(msg.Height - 5)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.sessions) == 0 {
		return "No sessions recorded yet.\n\n" + helpStyle.Render("q quit")
	}
	header := headerStyle.Render("Toe-curl session history")
	summary := summaryLine.Render(fmt.Sprintf(
		"%d sessions · %d reps · best score %d · avg %.1f · catch rate %.0f%%",
		m.summary.Sessions,
		m.summary.TotalReps,
		m.summary.BestScore,
		m.summary.AvgScore,
		m.summary.CatchRate*100,
	))
	help := helpStyle.Render("up/down scroll · q quit")
	return header + "\n" + summary + "\n\n" + m.table.View() + "\n" + help
}

func buildSessionTable(sessions []model.SessionRecord) table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Score", Width: 6},
		{Title: "Reps", Width: 5},
		{Title: "Caught", Width: 7},
		{Title: "Missed", Width: 7},
		{Title: "Catch %", Width: 8},
		{Title: "Best Hold", Width: 10},
		{Title: "Combo", Width: 6},
	}
	rows := make([]table.Row, 0, len(sessions))
	// Newest first for browsing.
	for i := len(sessions) - 1; i >= 0; i-- {
		rec := sessions[i]
		rows = append(rows, table.Row{
			rec.EndedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", rec.Score),
			fmt.Sprintf("%d", rec.Reps),
			fmt.Sprintf("%d", rec.Caught),
			fmt.Sprintf("%d", rec.Missed),
			fmt.Sprintf("%.0f%%", stats.CatchRate(rec.Caught, rec.Missed)*100),
			fmt.Sprintf("%.1fs", float64(rec.BestHoldMs)/1000),
			fmt.Sprintf("x%d", rec.MaxCombo),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	t.SetStyles(styles)
	return t
}
