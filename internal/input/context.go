package input

import (
	"fmt"
	"time"

	"github.com/dshills/kestrel/internal/input/action"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/input/keymap"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/queue"
)

const (
	// DefaultChordTimeout is how long a pending chord waits for its next key.
	DefaultChordTimeout = 1000 * time.Millisecond

	// DefaultPendingCapacity bounds the number of pending keys.
	DefaultPendingCapacity = 8
)

// Logger receives the resolver's diagnostics.
// *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Config configures an ActionContext.
type Config struct {
	// InitialMode is the mode the context starts in (default: Normal).
	InitialMode mode.Mode

	// ChordTimeout is how long to wait for the next key of a chord.
	// Default: 1000ms
	ChordTimeout time.Duration

	// PendingCapacity bounds the pending keys. Keys beyond it are dropped.
	// Default: 8
	PendingCapacity int

	// Clock is the time source (default: SystemClock).
	Clock Clock

	// Logger receives overflow warnings and dropped-key debug lines.
	Logger Logger

	// Metrics collects counters. A fresh tracker is created when nil.
	Metrics *Metrics
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialMode:     mode.Normal,
		ChordTimeout:    DefaultChordTimeout,
		PendingCapacity: DefaultPendingCapacity,
		Clock:           SystemClock{},
	}
}

// ActionContext resolves keys into mode-tagged actions.
//
// An ActionContext is owned by a single goroutine. The pending keys are
// always empty or a proper prefix of a bound sequence in the mode and
// keymaps that were active when the chord began.
type ActionContext struct {
	mode    mode.Mode
	keymaps keymap.Source

	pending      key.Sequence
	chordMode    mode.Mode
	chordKeymaps *keymap.Keymaps
	lastKey      time.Time
	scratch      key.Sequence

	timeout  time.Duration
	capacity int
	clock    Clock
	log      Logger
	metrics  *Metrics

	out queue.FIFO[action.Contextual]
}

// NewActionContext creates a resolver over src.
// Zero config fields take their defaults.
func NewActionContext(src keymap.Source, cfg Config) *ActionContext {
	if src == nil {
		panic("input: nil keymap source")
	}
	if !cfg.InitialMode.IsValid() {
		cfg.InitialMode = mode.Normal
	}
	if cfg.ChordTimeout <= 0 {
		cfg.ChordTimeout = DefaultChordTimeout
	}
	if cfg.PendingCapacity <= 0 {
		cfg.PendingCapacity = DefaultPendingCapacity
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}

	return &ActionContext{
		mode:     cfg.InitialMode,
		keymaps:  src,
		pending:  make(key.Sequence, 0, cfg.PendingCapacity),
		scratch:  make(key.Sequence, 0, cfg.PendingCapacity+1),
		timeout:  cfg.ChordTimeout,
		capacity: cfg.PendingCapacity,
		clock:    cfg.Clock,
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

// HandleKey feeds one key to the resolver.
// An expired chord is flushed before k is looked at.
func (ac *ActionContext) HandleKey(k key.Key) {
	start := time.Now()
	defer func() { ac.metrics.RecordKey(time.Since(start)) }()

	ac.CheckTimeout()

	km := ac.keymaps.Keymaps()
	if len(ac.pending) > 0 && km != ac.chordKeymaps {
		// The keymaps changed under a pending chord; resolve it against the
		// ones it was typed for.
		ac.flush(ac.chordKeymaps)
	}
	ac.feed(km, k)
}

func (ac *ActionContext) feed(km *keymap.Keymaps, k key.Key) {
	m := ac.CurrentMode()
	if len(ac.pending) > 0 {
		ac.assertPrefix(km, m)
	}

	seq := append(ac.scratch[:0], ac.pending...)
	seq = append(seq, k)
	ac.scratch = seq

	if node, ok := km.Walk(m, seq); ok {
		if node.HasChildren() {
			ac.hold(km, m, k)
			return
		}

		ac.pending = ac.pending[:0]
		a, bound := node.Value()
		if !bound {
			ac.log.Debug("input: %s has no action in %s mode", seq, m)
			ac.metrics.RecordUnbound()
			return
		}
		ac.emit(a, m)
		return
	}

	if len(ac.pending) > 0 {
		ac.flush(km)
		ac.feed(km, k)
		return
	}
	ac.insert(k, m)
}

// hold appends k to the pending chord.
func (ac *ActionContext) hold(km *keymap.Keymaps, m mode.Mode, k key.Key) {
	if len(ac.pending) >= ac.capacity {
		ac.log.Warn("input: pending chord %s is full, dropping %s", ac.pending, k)
		ac.metrics.RecordOverflow()
		return
	}
	if len(ac.pending) == 0 {
		ac.chordMode = m
		ac.chordKeymaps = km
	}
	ac.pending = append(ac.pending, k)
	ac.lastKey = ac.clock.Now()
}

// flush resolves every pending key by longest match, inserting the text of
// keys no binding claims.
func (ac *ActionContext) flush(km *keymap.Keymaps) {
	rest := ac.pending
	for len(rest) > 0 {
		m := ac.CurrentMode()
		if match, ok := km.LookupLongest(m, rest); ok {
			ac.emit(match.Value, m)
			rest = rest[match.Eaten:]
			continue
		}
		ac.insert(rest[0], m)
		rest = rest[1:]
	}
	ac.pending = ac.pending[:0]
}

// insert emits the text form of k, or drops k if it has none.
func (ac *ActionContext) insert(k key.Key, m mode.Mode) {
	text, ok := k.Text()
	if ok {
		var a action.Action
		if a, ok = action.InsertBytes(text); ok {
			ac.emit(a, m)
			return
		}
	}
	ac.log.Debug("input: dropping unbound %s in %s mode", k, m)
	ac.metrics.RecordDroppedKey()
}

// emit queues a and applies a mode change at once so keys still being
// resolved see it.
func (ac *ActionContext) emit(a action.Action, m mode.Mode) {
	ac.out.Push(action.Contextual{Action: a, Mode: m})
	ac.metrics.RecordAction(a.Kind == action.KindInsertBytes)
	if target, ok := a.Target(); ok {
		ac.mode = target
	}
}

func (ac *ActionContext) assertPrefix(km *keymap.Keymaps, m mode.Mode) {
	if m != ac.chordMode {
		panic(fmt.Sprintf("input: chord %s began in %s mode but %s is active", ac.pending, ac.chordMode, m))
	}
	if !km.IsPrefix(m, ac.pending) {
		panic(fmt.Sprintf("input: pending keys %s are not a prefix in %s mode", ac.pending, m))
	}
}

// CheckTimeout flushes the pending chord if its last key is older than the
// chord timeout. Returns true if it flushed.
func (ac *ActionContext) CheckTimeout() bool {
	if len(ac.pending) == 0 || ac.clock.Since(ac.lastKey) <= ac.timeout {
		return false
	}
	ac.metrics.RecordChordTimeout()
	ac.flush(ac.chordKeymaps)
	return true
}

// Deadline returns when the pending chord expires.
// ok is false when no chord is pending.
func (ac *ActionContext) Deadline() (deadline time.Time, ok bool) {
	if len(ac.pending) == 0 {
		return time.Time{}, false
	}
	return ac.lastKey.Add(ac.timeout), true
}

// Reset discards pending keys and queued actions and forces mode m.
func (ac *ActionContext) Reset(m mode.Mode) {
	if !m.IsValid() {
		panic(fmt.Sprintf("input: invalid mode %d", m))
	}
	ac.pending = ac.pending[:0]
	ac.chordKeymaps = nil
	ac.out.Clear()
	ac.mode = m
}

// Mode returns the context's own mode. Queued mode changes are already
// applied to it.
func (ac *ActionContext) Mode() mode.Mode {
	return ac.mode
}

// CurrentMode returns the mode in effect once every queued action has been
// applied.
func (ac *ActionContext) CurrentMode() mode.Mode {
	last, ok := ac.out.Last()
	if !ok {
		return ac.mode
	}
	if target, ok := last.Action.Target(); ok {
		return target
	}
	return last.Mode
}

// Pop removes the oldest queued action.
func (ac *ActionContext) Pop() (action.Contextual, bool) {
	return ac.out.TryPop()
}

// Drain removes every queued action.
func (ac *ActionContext) Drain() []action.Contextual {
	return ac.out.Drain()
}

// Queued returns the number of queued actions.
func (ac *ActionContext) Queued() int {
	return ac.out.Len()
}

// Pending returns a copy of the pending chord.
func (ac *ActionContext) Pending() key.Sequence {
	return ac.pending.Clone()
}

// SetKeymaps replaces the keymap source. A pending chord is resolved against
// the keymaps it began under on the next key or timeout.
func (ac *ActionContext) SetKeymaps(src keymap.Source) {
	if src == nil {
		panic("input: nil keymap source")
	}
	ac.keymaps = src
}

// Keymaps returns the keymaps currently in effect.
func (ac *ActionContext) Keymaps() *keymap.Keymaps {
	return ac.keymaps.Keymaps()
}

// SetTimeout changes the chord timeout. Non-positive values restore the
// default.
func (ac *ActionContext) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultChordTimeout
	}
	ac.timeout = d
}

// Timeout returns the chord timeout.
func (ac *ActionContext) Timeout() time.Duration {
	return ac.timeout
}

// Metrics returns the context's metrics tracker.
func (ac *ActionContext) Metrics() *Metrics {
	return ac.metrics
}
