// Package tui provides the Bubble Tea integration for Quick Door.
// It handles the terminal UI loop, input mapping and the SSH server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ChangeMsg is sent whenever the engine reports a state change.
type ChangeMsg struct{}

// engineClosedMsg is sent once the engine's change channel is closed.
type engineClosedMsg struct{}

// waitForChange returns a command that blocks until the engine signals a change.
// The model re-arms it after every ChangeMsg, so at most one listener is pending.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return engineClosedMsg{}
		}
		return ChangeMsg{}
	}
}
