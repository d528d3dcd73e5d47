package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// scoreTable renders the leaderboard with bubbles/table.
type scoreTable struct {
	table   table.Model
	entries []storage.ScoreEntry
}

func newScoreTable() scoreTable {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Name", Width: storage.MaxNameLen},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(storage.MaxEntries+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return scoreTable{table: t}
}

// SetEntries replaces the rows, selecting the row at highlight (or the top
// row when highlight is out of range).
func (st *scoreTable) SetEntries(entries []storage.ScoreEntry, highlight int) {
	st.entries = entries
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		date := ""
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Local().Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			date,
		}
	}
	st.table.SetRows(rows)

	if highlight >= 0 && highlight < len(rows) {
		st.table.SetCursor(highlight)
	} else {
		st.table.GotoTop()
	}
}

// View renders the table or an empty message.
func (st scoreTable) View() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(st.entries) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		return box.Render(empty.Render("No scores recorded yet.\nPlay a game to set a high score!"))
	}
	return box.Render(st.table.View())
}

// findEntry returns the index of the newest entry matching name and score,
// or -1.
func findEntry(entries []storage.ScoreEntry, name string, score int) int {
	found := -1
	for i, e := range entries {
		if e.Name == name && e.Score == score {
			found = i
		}
	}
	return found
}
