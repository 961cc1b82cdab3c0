package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/quickdoor/internal/core"
	"github.com/vovakirdan/quickdoor/internal/quickdoor"
)

// tipText is shown under the HUD.
const tipText = "Hit the OPEN door quickly. Speed increases as you score."

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// hudColor picks the HUD color for the current feedback flash.
func hudColor(f quickdoor.Feedback) core.Color {
	switch f {
	case quickdoor.FeedbackSuccess:
		return core.ColorBrightGreen
	case quickdoor.FeedbackMiss:
		return core.ColorBrightRed
	default:
		return core.ColorBrightWhite
	}
}

// hudText formats the score line.
func hudText(st quickdoor.State, initialMs int) string {
	return fmt.Sprintf("Score: %d   Best: %d   Speed: %d   Lvl: %d",
		st.Score, st.Best, quickdoor.SpeedRating(initialMs, st.SpeedMs), st.Level())
}

// drawGame draws the HUD, the doors and the status line onto the screen.
func drawGame(s *core.Screen, l Layout, st quickdoor.State, initialMs int) {
	s.Clear()

	s.DrawTextCentered(hudRow, hudText(st, initialMs), hudColor(st.Feedback))
	s.DrawTextCentered(tipRow, tipText, core.ColorGray)

	for i, r := range l.Doors {
		open := st.IsOpen(i)

		color := core.ColorGray
		label := "CLOSED"
		if open {
			color = core.ColorBrightGreen
			label = "OPEN"
		}

		num := fmt.Sprintf("%d", i+1)
		cx, cy := r.Center()
		s.DrawTextColored(cx-len(num)/2, doorLabelRow, num, core.ColorYellow)
		s.DrawBox(r, color)
		s.DrawTextColored(cx-len(label)/2, cy, label, color)
	}

	status := "Press space to start"
	if st.Running {
		status = "Press space to stop"
	}
	s.DrawTextCentered(l.StatusRow, status, core.ColorCyan)
}
