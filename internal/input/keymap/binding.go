package keymap

import (
	"fmt"

	"github.com/dshills/kestrel/internal/input/action"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/input/mode"
)

// Binding is the textual form of a key mapping.
type Binding struct {
	// Mode is the mode name ("normal", "insert", "select", "command").
	Mode string `toml:"mode" yaml:"mode" json:"mode"`

	// Keys is the key sequence that triggers this binding.
	// Formats: "j", "g g", "C-s", "<C-S-a>", "Ctrl+Shift+A"
	Keys string `toml:"keys" yaml:"keys" json:"keys"`

	// Action is the action name. Empty unbinds Keys.
	// Examples: "cursor.down", "editor.quit", "mode.insert", "insert:é"
	Action string `toml:"action" yaml:"action" json:"action"`

	// Description documents the binding.
	Description string `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
}

// Patch is one overlay on a base keymap. A nil Action unbinds Sequence.
type Patch struct {
	Mode     mode.Mode
	Sequence key.Sequence
	Action   *action.Action
}

// String returns "mode keys -> action".
func (p Patch) String() string {
	target := "unbind"
	if p.Action != nil {
		target = p.Action.String()
	}
	return fmt.Sprintf("%s %s -> %s", p.Mode, p.Sequence, target)
}

// Patch parses the binding.
func (b Binding) Patch() (Patch, error) {
	m, err := mode.Parse(b.Mode)
	if err != nil {
		return Patch{}, fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	seq, err := key.ParseSequence(b.Keys)
	if err != nil {
		return Patch{}, fmt.Errorf("binding %q: %w", b.Keys, err)
	}

	p := Patch{Mode: m, Sequence: seq}
	if b.Action != "" {
		a, err := action.Parse(b.Action)
		if err != nil {
			return Patch{}, fmt.Errorf("binding %q: %w", b.Keys, err)
		}
		p.Action = &a
	}
	return p, nil
}

// ParseBindings parses every binding, stopping at the first error.
func ParseBindings(bindings []Binding) ([]Patch, error) {
	patches := make([]Patch, 0, len(bindings))
	for i, b := range bindings {
		p, err := b.Patch()
		if err != nil {
			return nil, fmt.Errorf("binding %d: %w", i, err)
		}
		patches = append(patches, p)
	}
	return patches, nil
}
