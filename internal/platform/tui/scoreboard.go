package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/quickdoor/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinWidth = 40
	maxScores     = 100 // Max scores to load
)

// ScoreBook records finished sessions and lists the best ones.
// *storage.Store satisfies it.
type ScoreBook interface {
	SaveScore(player string, score int) (int64, error)
	TopScores(limit int) ([]storage.ScoreEntry, error)
}

// Scoreboard is the high score table shown over the game screen.
type Scoreboard struct {
	book   ScoreBook
	scores []storage.ScoreEntry
	table  table.Model
	width  int
	height int
	err    error
}

// NewScoreboard creates a scoreboard sized for the given terminal.
func NewScoreboard(book ScoreBook, width, height int) Scoreboard {
	sb := Scoreboard{
		book:   book,
		width:  width,
		height: height,
	}
	sb.table = sb.createTable()
	return sb
}

// createTable creates a new table with appropriate columns.
func (sb *Scoreboard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}

	// Give spare width to the player column
	if extra := sb.width - 8 - tableMinWidth; extra > 0 {
		columns[1].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(sb.height-8, 3)), // Leave room for title, help and margins
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

	return t
}

// Reload fetches the current top scores.
func (sb *Scoreboard) Reload() {
	sb.scores, sb.err = nil, nil
	if sb.book != nil {
		sb.scores, sb.err = sb.book.TopScores(maxScores)
	}
	sb.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (sb *Scoreboard) updateTableRows() {
	rows := make([]table.Row, len(sb.scores))
	for i, s := range sb.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	sb.table.SetRows(rows)
	sb.table.GotoTop()
}

// Resize rebuilds the table for a new terminal size.
func (sb *Scoreboard) Resize(width, height int) {
	sb.width = width
	sb.height = height
	sb.table = sb.createTable()
	sb.updateTableRows()
}

// Update passes scrolling input to the table.
func (sb Scoreboard) Update(msg tea.Msg) (Scoreboard, tea.Cmd) {
	var cmd tea.Cmd
	sb.table, cmd = sb.table.Update(msg)
	return sb, cmd
}

// View renders the scoreboard.
func (sb Scoreboard) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES - Quick Door", sb.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(sb.renderTableContent()), sb.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (sb Scoreboard) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if sb.err != nil {
		return emptyStyle.Render("Scores are unavailable.")
	}
	if len(sb.scores) == 0 {
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return sb.table.View()
}

// centerText centers every line of text within width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
