package renderer

import (
	"fmt"

	"github.com/dshills/kestrel/internal/renderer/core"
)

// drawStatus renders the status line on row y:
//
//	 NORMAL  notes.txt [+]                 g g  3:7
//
// The mode sits on ModeBG, a pending chord is drawn in PendingFG, and the
// right-hand segment wins when the row is too narrow for both.
func (r *Renderer) drawStatus(f Frame, width, y int) {
	base := core.DefaultStyle().WithForeground(r.theme.StatusFG).WithBackground(r.theme.StatusBG)
	for x := range width {
		r.backend.SetCell(x, y, core.Cell{Rune: ' ', Width: 1, Style: base})
	}

	left := core.CellsFromString(" "+f.Mode.DisplayName()+" ", base.WithBackground(r.theme.ModeBG).Bold())
	left = append(left, core.CellsFromString(" "+r.describe(f), base)...)

	var right []core.Cell
	if len(f.Pending) > 0 {
		right = append(right, core.CellsFromString(f.Pending.String()+"  ", base.WithForeground(r.theme.PendingFG).Bold())...)
	}
	right = append(right, core.CellsFromString(fmt.Sprintf("%d:%d ", f.Cursor.Row+1, f.Cursor.Col+1), base)...)

	if len(right) > width {
		right = right[len(right)-width:]
		for len(right) > 0 && right[0].IsContinuation() {
			right = right[1:]
		}
	}
	leftWidth := width - len(right)
	r.drawCells(0, y, leftWidth, left)
	r.drawCells(width-len(right), y, width, right)
}

// NoName is shown for a document without a path.
const NoName = "[No Name]"

func (r *Renderer) describe(f Frame) string {
	if f.Message != "" {
		return f.Message
	}
	name := f.Path
	if name == "" {
		name = NoName
	}
	if f.Dirty {
		name += " [+]"
	}
	return name
}
