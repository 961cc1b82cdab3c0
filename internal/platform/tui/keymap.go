package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quickdoor/internal/quickdoor"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Toggle key.Binding
	Doors  [quickdoor.DoorCount]key.Binding
	Reset  key.Binding
	Scores key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Doors[0], k.Reset, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Doors[0], k.Doors[1], k.Doors[2], k.Doors[3]},
		{k.Reset, k.Scores, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
// Doors are reachable by number or by vim-style home row keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "start/stop"),
		),
		Doors: [quickdoor.DoorCount]key.Binding{
			key.NewBinding(key.WithKeys("1", "h"), key.WithHelp("1-4/hjkl", "door")),
			key.NewBinding(key.WithKeys("2", "j"), key.WithHelp("2/j", "door 2")),
			key.NewBinding(key.WithKeys("3", "k"), key.WithHelp("3/k", "door 3")),
			key.NewBinding(key.WithKeys("4", "l"), key.WithHelp("4/l", "door 4")),
		},
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset best"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "high scores"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DoorForKey returns the door position bound to the key, if any.
func (k KeyMap) DoorForKey(msg tea.KeyMsg) (int, bool) {
	for i, b := range k.Doors {
		if key.Matches(msg, b) {
			return i, true
		}
	}
	return 0, false
}
