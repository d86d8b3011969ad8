package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(tcell.StyleDefault)
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	if cell.IsContinuation() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, cell.Combining, convertStyle(cell.Style))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) SetCursorStyle(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var tcellStyle tcell.CursorStyle
	switch style {
	case CursorUnderline:
		tcellStyle = tcell.CursorStyleSteadyUnderline
	case CursorBar:
		tcellStyle = tcell.CursorStyleSteadyBar
	default:
		tcellStyle = tcell.CursorStyleSteadyBlock
	}
	t.screen.SetCursorStyle(tcellStyle)
}

// PollEvent blocks for the next event. It is called without the lock so
// drawing can continue while input is awaited.
func (t *Terminal) PollEvent() Event {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return Event{Type: EventClosed}
		case *tcell.EventKey:
			if k, ok := convertKey(ev); ok {
				return Event{Type: EventKey, Key: k}
			}
		case *tcell.EventResize:
			t.mu.Lock()
			t.screen.Sync()
			t.mu.Unlock()
			w, h := ev.Size()
			return Event{Type: EventResize, Width: w, Height: h}
		case *tcell.EventInterrupt:
			return Event{Type: EventInterrupt}
		}
	}
}

func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
	}
	if !s.Background.IsDefault() {
		style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}

var symbols = map[tcell.Key]key.Symbol{
	tcell.KeyEscape:    key.SymEscape,
	tcell.KeyEnter:     key.SymEnter,
	tcell.KeyTab:       key.SymTab,
	tcell.KeyBackspace: key.SymBackspace,
	// KeyBackspace2 is DEL (0x7f), what most terminals send for Backspace.
	tcell.KeyBackspace2: key.SymBackspace,
	tcell.KeyDelete:     key.SymDelete,
	tcell.KeyInsert:     key.SymInsert,
	tcell.KeyHome:       key.SymHome,
	tcell.KeyEnd:        key.SymEnd,
	tcell.KeyPgUp:       key.SymPageUp,
	tcell.KeyPgDn:       key.SymPageDown,
	tcell.KeyUp:         key.SymUp,
	tcell.KeyDown:       key.SymDown,
	tcell.KeyLeft:       key.SymLeft,
	tcell.KeyRight:      key.SymRight,
	tcell.KeyF1:         key.SymF1,
	tcell.KeyF2:         key.SymF2,
	tcell.KeyF3:         key.SymF3,
	tcell.KeyF4:         key.SymF4,
	tcell.KeyF5:         key.SymF5,
	tcell.KeyF6:         key.SymF6,
	tcell.KeyF7:         key.SymF7,
	tcell.KeyF8:         key.SymF8,
	tcell.KeyF9:         key.SymF9,
	tcell.KeyF10:        key.SymF10,
	tcell.KeyF11:        key.SymF11,
	tcell.KeyF12:        key.SymF12,
}

// convertKey converts a tcell key event to a key.Key. Keys with no
// equivalent are reported as not ok.
func convertKey(ev *tcell.EventKey) (key.Key, bool) {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		return key.NewRune(ev.Rune(), mods), true
	case k == tcell.KeyBacktab:
		return key.NewSymbol(key.SymTab, mods.With(key.ModShift)), true
	}

	if sym, ok := symbols[k]; ok {
		// Terminals report Tab, Enter, Backspace and Escape as control
		// codes; drop the Ctrl tcell infers for them.
		if k < tcell.KeyRune {
			mods = mods.Without(key.ModCtrl)
		}
		return key.NewSymbol(sym, mods), true
	}

	switch {
	case k == tcell.KeyCtrlSpace:
		return key.NewRune(' ', mods.With(key.ModCtrl)), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.NewRune('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl)), true
	}
	return key.Key{}, false
}

// convertMod converts tcell modifier mask to key modifiers. Meta folds
// into Alt.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		result = result.With(key.ModAlt)
	}
	return result
}
