// Package backend provides terminal backend abstraction for the renderer.
package backend

import (
	"strings"
	"sync"

	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/renderer/core"
)

// CursorStyle defines how the cursor appears.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventInterrupt wakes a blocked PollEvent without input.
	EventInterrupt
	// EventClosed is returned once the backend has shut down.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Key

	// Width and Height are set for EventResize.
	Width, Height int
}

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// A blocked PollEvent returns EventClosed.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// SetCursorStyle changes the cursor appearance.
	SetCursorStyle(style CursorStyle)

	// PollEvent waits for and returns the next terminal event.
	PollEvent() Event

	// Interrupt makes a pending or future PollEvent return EventInterrupt.
	Interrupt()
}

// NullBackend is an in-memory backend for tests and headless runs.
// Key input is scripted with PostKeys.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorStyle   CursorStyle
	shows         int

	events    chan Event
	closed    chan struct{}
	closeOnce sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		cells:  makeCells(width, height),
		events: make(chan Event, 256),
		closed: make(chan struct{}),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = makeCells(b.width, b.height)
	return nil
}

// inBounds reports whether x, y lies inside the cell grid. Callers hold mu.
func (b *NullBackend) inBounds(x, y int) bool {
	return y >= 0 && y < len(b.cells) && x >= 0 && x < len(b.cells[y])
}

func makeCells(width, height int) [][]core.Cell {
	cells := make([][]core.Cell, height)
	for i := range cells {
		cells[i] = make([]core.Cell, width)
		for j := range cells[i] {
			cells[i][j] = core.EmptyCell()
		}
	}
	return cells
}

func (b *NullBackend) Shutdown() {
	b.closeOnce.Do(func() { close(b.closed) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inBounds(x, y) {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = makeCells(b.width, b.height)
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) SetCursorStyle(style CursorStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorStyle = style
}

func (b *NullBackend) PollEvent() Event {
	select {
	case <-b.closed:
		return Event{Type: EventClosed}
	default:
	}
	select {
	case ev := <-b.events:
		return ev
	case <-b.closed:
		return Event{Type: EventClosed}
	}
}

func (b *NullBackend) Interrupt() {
	b.post(Event{Type: EventInterrupt})
}

// PostEvent queues ev for PollEvent. Events are dropped when the queue is
// full.
func (b *NullBackend) PostEvent(ev Event) {
	b.post(ev)
}

// PostKeys queues a key event per key of seq.
func (b *NullBackend) PostKeys(seq key.Sequence) {
	for _, k := range seq {
		b.post(Event{Type: EventKey, Key: k})
	}
}

func (b *NullBackend) post(ev Event) {
	select {
	case b.events <- ev:
	default:
	}
}

// Resize changes the dimensions and queues an EventResize.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.cells = makeCells(width, height)
	b.mu.Unlock()
	b.post(Event{Type: EventResize, Width: width, Height: height})
}

// Cell returns the cell at x, y.
func (b *NullBackend) Cell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inBounds(x, y) {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Line returns row y as text with trailing spaces trimmed.
func (b *NullBackend) Line(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inBounds(0, y) {
		return ""
	}
	return strings.TrimRight(core.StringFromCells(b.cells[y]), " ")
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorStyleValue returns the current cursor style for testing.
func (b *NullBackend) CursorStyleValue() CursorStyle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorStyle
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}
