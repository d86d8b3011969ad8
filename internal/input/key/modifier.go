package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

const (
	ModNone Modifier = 0

	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
)

// modifierOrder is the order modifiers are written in: Ctrl, Alt, Shift.
var modifierOrder = [...]struct {
	mod   Modifier
	name  string
	short byte
}{
	{ModCtrl, "Ctrl", 'C'},
	{ModAlt, "Alt", 'A'},
	{ModShift, "Shift", 'S'},
}

// Has reports whether every modifier in mod is held in m.
func (m Modifier) Has(mod Modifier) bool {
	return mod != ModNone && m&mod == mod
}

func (m Modifier) HasShift() bool { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool  { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool   { return m.Has(ModAlt) }

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m with mod removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String joins the held modifiers with '+', e.g. "Ctrl+Alt".
func (m Modifier) String() string {
	var parts []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			parts = append(parts, o.name)
		}
	}
	return strings.Join(parts, "+")
}

// Prefix returns the vim-style prefix of the held modifiers, e.g. "C-A-".
func (m Modifier) Prefix() string {
	var sb strings.Builder
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			sb.WriteByte(o.short)
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"alt":     ModAlt,
	"a":       ModAlt,
	"m":       ModAlt, // M- is Alt in a terminal
	"meta":    ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
}

// ModifierFromName looks a modifier up by name, ignoring case and
// surrounding space. Unknown names give ModNone.
func ModifierFromName(name string) Modifier {
	return modifierNames[strings.ToLower(strings.TrimSpace(name))]
}
