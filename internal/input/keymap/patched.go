package keymap

import (
	"github.com/dshills/kestrel/internal/input/action"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/input/mode"
)

// Patched overlays an append-only list of patches on a base Keymaps.
// The base is never modified.
type Patched struct {
	base    *Keymaps
	patches []Patch

	merged *Keymaps // nil when stale
}

// NewPatched creates an overlay on base with no patches.
func NewPatched(base *Keymaps) *Patched {
	return &Patched{base: base}
}

// Base returns the unpatched keymaps.
func (p *Patched) Base() *Keymaps {
	return p.base
}

// Patches returns a copy of the patch list in application order.
func (p *Patched) Patches() []Patch {
	out := make([]Patch, len(p.patches))
	copy(out, p.patches)
	return out
}

// Apply appends patches and invalidates the merged view.
func (p *Patched) Apply(patches ...Patch) {
	for _, patch := range patches {
		patch.Sequence = patch.Sequence.Clone()
		if patch.Action != nil {
			a := *patch.Action
			patch.Action = &a
		}
		p.patches = append(p.patches, patch)
	}
	p.merged = nil
}

// Bind appends a patch mapping seq to a in mode m.
func (p *Patched) Bind(m mode.Mode, seq key.Sequence, a action.Action) {
	p.Apply(Patch{Mode: m, Sequence: seq, Action: &a})
}

// Unbind appends a patch removing seq from mode m.
func (p *Patched) Unbind(m mode.Mode, seq key.Sequence) {
	p.Apply(Patch{Mode: m, Sequence: seq})
}

// Keymaps returns the merged view, rebuilding it if a patch was added since
// the last call.
func (p *Patched) Keymaps() *Keymaps {
	if p.merged == nil {
		p.merged = p.rebuild()
	}
	return p.merged
}

func (p *Patched) rebuild() *Keymaps {
	if len(p.patches) == 0 {
		return p.base
	}

	km := p.base.Clone()
	unbound := false
	for _, patch := range p.patches {
		if patch.Action == nil {
			unbound = km.Unbind(patch.Mode, patch.Sequence) || unbound
			continue
		}
		km.Bind(patch.Mode, patch.Sequence, *patch.Action)
	}
	if unbound {
		// Clone copies bound sequences only, dropping the dead branches
		// Unbind leaves behind.
		km = km.Clone()
	}
	return km
}
