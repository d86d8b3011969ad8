package renderer

import (
	"sync"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/kestrel/internal/config"
	"github.com/dshills/kestrel/internal/engine/rope"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/renderer/backend"
	"github.com/dshills/kestrel/internal/renderer/core"
)

// Frame is everything one Draw shows.
type Frame struct {
	// Text is read, never modified or consumed.
	Text *rope.Rope

	// Cursor is the cursor position in Text.
	Cursor rope.Position

	Mode    mode.Mode
	Pending key.Sequence
	Path    string
	Dirty   bool

	// Message replaces the path in the status line when set.
	Message string
}

// Theme holds the status line colors.
type Theme struct {
	StatusFG  core.Color
	StatusBG  core.Color
	PendingFG core.Color
	ModeBG    core.Color
}

// ThemeFrom converts parsed config colors.
func ThemeFrom(t config.Theme) Theme {
	return Theme{
		StatusFG:  core.ColorFrom(t.StatusFG),
		StatusBG:  core.ColorFrom(t.StatusBG),
		PendingFG: core.ColorFrom(t.PendingFG),
		ModeBG:    core.ColorFrom(t.ModeBG),
	}
}

// Options configures the renderer.
type Options struct {
	// TabWidth is the distance between tab stops.
	TabWidth int

	// ScrollMargin is the number of lines kept visible above and below
	// the cursor when the window is tall enough.
	ScrollMargin int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		TabWidth:     4,
		ScrollMargin: 2,
	}
}

// Renderer draws frames to a backend.
type Renderer struct {
	mu      sync.Mutex
	backend backend.Backend
	theme   Theme
	opts    Options

	// top is the first document line on screen.
	top int
}

// New creates a renderer for b.
func New(b backend.Backend, theme Theme, opts Options) *Renderer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultOptions().TabWidth
	}
	if opts.ScrollMargin < 0 {
		opts.ScrollMargin = 0
	}
	return &Renderer{backend: b, theme: theme, opts: opts}
}

// SetTheme replaces the status line colors from the next Draw on.
func (r *Renderer) SetTheme(theme Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = theme
}

// Top returns the first document line currently shown.
func (r *Renderer) Top() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.top
}

// Draw renders f: the visible lines, then the status line on the last
// row, then the cursor.
func (r *Renderer) Draw(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.backend.Size()
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.Clear()

	rows := height - 1
	lines := 1
	if f.Text != nil {
		lines = f.Text.LineCount()
	}
	r.scroll(f.Cursor.Row, rows, lines)

	cursorX := 0
	if rows > 0 && f.Text != nil {
		it := f.Text.Lines()
		for line := 0; line < r.top+rows && it.Next(); line++ {
			if line < r.top {
				continue
			}
			cells, cols := layoutLine(it.Text(), core.DefaultStyle(), r.opts.TabWidth)
			r.drawCells(0, line-r.top, width, cells)
			if line == f.Cursor.Row {
				cursorX = cols[min(f.Cursor.Col, len(cols)-1)]
			}
		}
	}

	r.drawStatus(f, width, height-1)

	r.backend.SetCursorStyle(CursorStyleFor(f.Mode))
	if rows > 0 {
		r.backend.ShowCursor(min(cursorX, width-1), f.Cursor.Row-r.top)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()
}

// scroll moves top so cursorRow is on screen, keeping the scroll margin
// when rows allows it. The view never scrolls past the last of lines.
func (r *Renderer) scroll(cursorRow, rows, lines int) {
	if rows <= 0 {
		r.top = 0
		return
	}
	margin := min(r.opts.ScrollMargin, (rows-1)/2)
	if cursorRow-margin < r.top {
		r.top = max(0, cursorRow-margin)
	}
	if cursorRow+margin >= r.top+rows {
		r.top = cursorRow + margin - rows + 1
	}
	if limit := max(0, lines-rows); r.top > limit && cursorRow < limit+rows {
		r.top = limit
	}
}

// drawCells writes cells from column x, clipping at width. A wide cell
// that would straddle the edge is dropped.
func (r *Renderer) drawCells(x, y, width int, cells []core.Cell) int {
	for _, c := range cells {
		if x >= width || x+max(c.Width, 1) > width && !c.IsContinuation() {
			break
		}
		r.backend.SetCell(x, y, c)
		x++
	}
	return x
}

// layoutLine converts a line into cells, expanding tabs and dropping
// zero-width control characters. cols[i] is the display column of the
// i-th character; cols[len] is the column after the line.
func layoutLine(text string, style core.Style, tabWidth int) (cells []core.Cell, cols []int) {
	cols = make([]int, 0, len(text)+1)
	state := -1
	for len(text) > 0 {
		var cluster string
		var width int
		cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)

		start := len(cells)
		for range utf8.RuneCountInString(cluster) {
			cols = append(cols, start)
		}

		switch {
		case cluster == "\t":
			for range tabWidth - start%tabWidth {
				cells = append(cells, core.Cell{Rune: ' ', Width: 1, Style: style})
			}
		case width == 0:
		default:
			cells = append(cells, core.CellsFromString(cluster, style)...)
		}
	}
	cols = append(cols, len(cells))
	return cells, cols
}

// CursorStyleFor returns the cursor shape shown in m.
func CursorStyleFor(m mode.Mode) backend.CursorStyle {
	switch m {
	case mode.Insert:
		return backend.CursorBar
	case mode.Command:
		return backend.CursorUnderline
	default:
		return backend.CursorBlock
	}
}
