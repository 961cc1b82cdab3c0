package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quickdoor/internal/core"
	"github.com/vovakirdan/quickdoor/internal/quickdoor"
)

// Model is the Bubble Tea model for a Quick Door session.
type Model struct {
	engine     *quickdoor.Engine
	book       ScoreBook
	logger     *log.Logger
	config     core.RuntimeConfig
	screen     *core.Screen
	layout     Layout
	keys       KeyMap
	help       help.Model
	scores     Scoreboard
	showScores bool
	quitting   bool
}

// NewModel creates a model driving the given engine.
// book may be nil, in which case finished sessions are not recorded.
func NewModel(engine *quickdoor.Engine, book ScoreBook, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Player == "" {
		cfg.Player = "local"
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	gameH := max(cfg.ScreenH-1, 0) // Last row holds the help bar
	return Model{
		engine: engine,
		book:   book,
		logger: logger,
		config: cfg,
		screen: core.NewScreen(cfg.ScreenW, gameH),
		layout: NewLayout(cfg.ScreenW, gameH),
		keys:   DefaultKeyMap(),
		help:   h,
		scores: NewScoreboard(book, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init starts listening for engine changes.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.engine.Changes())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case ChangeMsg:
		// The state is read in View; only the listener needs re-arming.
		return m, waitForChange(m.engine.Changes())

	case engineClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Scores):
		m.showScores = !m.showScores
		if m.showScores {
			m.scores.Reload()
		}
		return m, nil
	}

	if m.showScores {
		if key.Matches(msg, m.keys.Up, m.keys.Down) {
			var cmd tea.Cmd
			m.scores, cmd = m.scores.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.Reset):
		m.engine.ResetBest()
	default:
		if pos, ok := m.keys.DoorForKey(msg); ok {
			m.attempt(pos)
		}
	}
	return m, nil
}

// handleMouse maps left clicks on a door to an attempt.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showScores || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if pos, ok := m.layout.DoorAt(msg.X, msg.Y); ok {
		m.attempt(pos)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height

	gameH := max(msg.Height-1, 0)
	m.screen.Resize(msg.Width, gameH)
	m.layout = NewLayout(msg.Width, gameH)
	m.scores.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) toggle() {
	if m.engine.Snapshot().Running {
		FinishSession(m.engine, m.book, m.config.Player, m.logger)
		return
	}
	m.engine.Start()
}

func (m Model) attempt(pos int) {
	outcome := m.engine.RegisterAttempt(pos)
	m.logger.Debug("attempt", "door", pos+1, "outcome", outcome)
}

// quit stops a running session, recording it, and releases the engine.
func (m Model) quit() (tea.Model, tea.Cmd) {
	FinishSession(m.engine, m.book, m.config.Player, m.logger)
	m.engine.Close()
	m.quitting = true
	return m, tea.Quit
}

// FinishSession stops the engine and records the final score once.
// Stop reports false when nothing was running, so repeated calls record nothing.
func FinishSession(engine *quickdoor.Engine, book ScoreBook, player string, logger *log.Logger) {
	if !engine.Stop() {
		return
	}
	st := engine.Snapshot()
	if st.Score <= 0 || book == nil {
		return
	}
	if _, err := book.SaveScore(player, st.Score); err != nil {
		logger.Warn("could not record score", "player", player, "score", st.Score, "error", err)
		return
	}
	logger.Info("session recorded", "player", player, "score", st.Score, "best", st.Best)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	drawGame(m.screen, m.layout, m.engine.Snapshot(), m.engine.InitialSpeedMs())

	dir := filepath.Join(os.Getenv("HOME"), ".quickdoor", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("quickdoor_%s.txt", time.Now().Format("20060102_150405"))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footer := helpStyle.Render(m.help.View(m.keys))

	if m.showScores {
		return m.scores.View() + "\n" + footer
	}

	drawGame(m.screen, m.layout, m.engine.Snapshot(), m.engine.InitialSpeedMs())
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program for a local session.
func Run(engine *quickdoor.Engine, book ScoreBook, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(engine, book, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
