package tui

import (
	"github.com/vovakirdan/quickdoor/internal/core"
	"github.com/vovakirdan/quickdoor/internal/quickdoor"
)

// Layout constants
const (
	doorGap      = 2
	doorMinW     = 10
	doorMaxW     = 14
	doorMinH     = 4
	doorMaxH     = 9
	hudRow       = 1
	tipRow       = 2
	doorLabelRow = 4
)

// Layout holds the screen positions of the HUD and the doors.
// It is recomputed on every resize and shared by drawing and mouse hit-testing.
type Layout struct {
	Width     int
	Height    int
	Doors     [quickdoor.DoorCount]core.Rect
	StatusRow int
}

// NewLayout places the four doors in a centered row below the HUD.
func NewLayout(width, height int) Layout {
	doorW := core.Clamp((width-4-(quickdoor.DoorCount-1)*doorGap)/quickdoor.DoorCount, doorMinW, doorMaxW)
	doorH := core.Clamp(height-10, doorMinH, doorMaxH)

	totalW := quickdoor.DoorCount*doorW + (quickdoor.DoorCount-1)*doorGap
	x0 := (width - totalW) / 2
	y0 := doorLabelRow + 1

	l := Layout{
		Width:     width,
		Height:    height,
		StatusRow: y0 + doorH + 1,
	}
	for i := range l.Doors {
		l.Doors[i] = core.NewRect(x0+i*(doorW+doorGap), y0, doorW, doorH)
	}
	return l
}

// DoorAt returns the door under the given cell, if any.
func (l Layout) DoorAt(x, y int) (int, bool) {
	for i, r := range l.Doors {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}
