package keymap

import (
	"fmt"

	"github.com/dshills/kestrel/internal/input/action"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/trie"
)

// Trie is the per-mode binding trie.
type Trie = trie.Trie[key.Key, action.Action]

// Node is a position reached in a binding trie.
type Node = trie.Node[action.Action]

// Source provides the keymaps currently in effect.
// Both *Keymaps and *Patched implement it.
type Source interface {
	Keymaps() *Keymaps
}

// Keymaps holds one binding trie per mode.
// Keymaps are not safe for concurrent mutation.
type Keymaps struct {
	tries [mode.Count]*Trie
}

// New creates keymaps with no bindings.
func New() *Keymaps {
	km := &Keymaps{}
	for i := range km.tries {
		km.tries[i] = trie.New[key.Key, action.Action](key.Encoding{})
	}
	return km
}

// Keymaps returns km itself.
func (km *Keymaps) Keymaps() *Keymaps {
	return km
}

// Trie returns the binding trie of m.
func (km *Keymaps) Trie(m mode.Mode) *Trie {
	if !m.IsValid() {
		panic(fmt.Sprintf("keymap: invalid mode %d", m))
	}
	return km.tries[m]
}

// Bind maps seq to a in mode m, replacing any previous binding.
func (km *Keymaps) Bind(m mode.Mode, seq key.Sequence, a action.Action) {
	km.Trie(m).Insert(seq, a)
}

// Unbind removes the binding of seq in mode m.
// Returns false if seq was not bound.
func (km *Keymaps) Unbind(m mode.Mode, seq key.Sequence) bool {
	return km.Trie(m).Remove(seq)
}

// Walk returns the trie node reached by seq in mode m.
func (km *Keymaps) Walk(m mode.Mode, seq key.Sequence) (*Node, bool) {
	return km.Trie(m).Walk(seq)
}

// Lookup returns the action bound to exactly seq in mode m.
func (km *Keymaps) Lookup(m mode.Mode, seq key.Sequence) (action.Action, bool) {
	return km.Trie(m).Lookup(seq)
}

// LookupLongest returns the action bound to the longest bound prefix of seq
// in mode m.
func (km *Keymaps) LookupLongest(m mode.Mode, seq key.Sequence) (trie.Match[action.Action], bool) {
	return km.Trie(m).LookupLongest(seq)
}

// IsPrefix reports whether seq is a proper prefix of a bound sequence in m.
func (km *Keymaps) IsPrefix(m mode.Mode, seq key.Sequence) bool {
	n, ok := km.Walk(m, seq)
	return ok && n.HasChildren()
}

// Len returns the number of bindings in mode m.
func (km *Keymaps) Len(m mode.Mode) int {
	return km.Trie(m).Len()
}

// Each calls fn for every binding of mode m in canonical key order.
// The sequence passed to fn is reused between calls.
func (km *Keymaps) Each(m mode.Mode, fn func(seq key.Sequence, a action.Action)) {
	km.Trie(m).Each(key.Encoding{}.Decode, func(seq []key.Key, a action.Action) {
		fn(seq, a)
	})
}

// Clone returns a deep copy of km.
func (km *Keymaps) Clone() *Keymaps {
	out := New()
	for _, m := range mode.All() {
		km.Each(m, func(seq key.Sequence, a action.Action) {
			out.Bind(m, seq, a)
		})
	}
	return out
}
