package key

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Symbol identifies a non-character key.
// A Key with SymbolNone carries a rune instead.
type Symbol uint8

const (
	// SymbolNone marks a character key.
	SymbolNone Symbol = iota

	// Special keys
	SymEscape
	SymEnter
	SymTab
	SymBackspace
	SymDelete
	SymInsert
	SymHome
	SymEnd
	SymPageUp
	SymPageDown

	// Arrow keys
	SymUp
	SymDown
	SymLeft
	SymRight

	// Function keys
	SymF1
	SymF2
	SymF3
	SymF4
	SymF5
	SymF6
	SymF7
	SymF8
	SymF9
	SymF10
	SymF11
	SymF12

	symbolCount
)

var symbolNames = [symbolCount]string{
	SymbolNone:   "None",
	SymEscape:    "Esc",
	SymEnter:     "CR",
	SymTab:       "Tab",
	SymBackspace: "BS",
	SymDelete:    "Del",
	SymInsert:    "Ins",
	SymHome:      "Home",
	SymEnd:       "End",
	SymPageUp:    "PageUp",
	SymPageDown:  "PageDown",
	SymUp:        "Up",
	SymDown:      "Down",
	SymLeft:      "Left",
	SymRight:     "Right",
	SymF1:        "F1",
	SymF2:        "F2",
	SymF3:        "F3",
	SymF4:        "F4",
	SymF5:        "F5",
	SymF6:        "F6",
	SymF7:        "F7",
	SymF8:        "F8",
	SymF9:        "F9",
	SymF10:       "F10",
	SymF11:       "F11",
	SymF12:       "F12",
}

// String returns the Vim-style name of the symbol.
func (s Symbol) String() string {
	if s < symbolCount {
		return symbolNames[s]
	}
	return fmt.Sprintf("Symbol(%d)", s)
}

// IsValid reports whether s is a known symbol.
func (s Symbol) IsValid() bool {
	return s < symbolCount
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (s Symbol) IsFunctionKey() bool {
	return s >= SymF1 && s <= SymF12
}

// IsArrowKey returns true if this is an arrow key.
func (s Symbol) IsArrowKey() bool {
	return s >= SymUp && s <= SymRight
}

// symbolNameMap maps key names (lowercase) to symbols.
var symbolNameMap = map[string]Symbol{
	"escape":    SymEscape,
	"esc":       SymEscape,
	"enter":     SymEnter,
	"return":    SymEnter,
	"cr":        SymEnter,
	"tab":       SymTab,
	"backspace": SymBackspace,
	"bs":        SymBackspace,
	"delete":    SymDelete,
	"del":       SymDelete,
	"insert":    SymInsert,
	"ins":       SymInsert,
	"home":      SymHome,
	"end":       SymEnd,
	"pageup":    SymPageUp,
	"pgup":      SymPageUp,
	"pagedown":  SymPageDown,
	"pgdn":      SymPageDown,
	"up":        SymUp,
	"down":      SymDown,
	"left":      SymLeft,
	"right":     SymRight,
	"f1":        SymF1,
	"f2":        SymF2,
	"f3":        SymF3,
	"f4":        SymF4,
	"f5":        SymF5,
	"f6":        SymF6,
	"f7":        SymF7,
	"f8":        SymF8,
	"f9":        SymF9,
	"f10":       SymF10,
	"f11":       SymF11,
	"f12":       SymF12,
}

// SymbolFromName returns the Symbol for a given name (case-insensitive).
// Returns SymbolNone if the name is not recognized.
func SymbolFromName(name string) Symbol {
	if s, ok := symbolNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s
	}
	return SymbolNone
}

// Key is a single key press: a rune or a Symbol, plus modifiers.
// Keys are comparable values.
type Key struct {
	// Rune is the character for character keys.
	Rune rune

	// Symbol identifies a special key; SymbolNone for character keys.
	Symbol Symbol

	// Mods contains the active modifier keys.
	Mods Modifier
}

// NewRune creates a character key.
func NewRune(r rune, mods Modifier) Key {
	return Key{Rune: r, Mods: mods}
}

// NewSymbol creates a special key.
func NewSymbol(s Symbol, mods Modifier) Key {
	return Key{Symbol: s, Mods: mods}
}

// IsRune returns true if this is a character key.
func (k Key) IsRune() bool {
	return k.Symbol == SymbolNone
}

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Canonical folds Shift into the rune of a character key whose case changes,
// so "S-a" and "A" compare equal.
func (k Key) Canonical() Key {
	if !k.IsRune() || !k.Mods.HasShift() {
		return k
	}
	up := upper(k.Rune)
	if up != k.Rune || unicode.IsUpper(k.Rune) {
		k.Rune = up
		k.Mods = k.Mods.Without(ModShift)
	}
	return k
}

// Text returns the bytes this key inserts when typed, if any.
// Keys chorded with Ctrl or Alt, non-printable runes, and symbols other than
// Enter and Tab have no text form.
func (k Key) Text() ([]byte, bool) {
	if k.Mods.HasCtrl() || k.Mods.HasAlt() {
		return nil, false
	}

	switch k.Symbol {
	case SymbolNone:
	case SymEnter:
		return []byte{'\n'}, true
	case SymTab:
		return []byte{'\t'}, true
	default:
		return nil, false
	}

	r := k.Rune
	if !utf8.ValidRune(r) || !unicode.IsPrint(r) {
		return nil, false
	}
	if k.Mods.HasShift() {
		r = upper(r)
	}
	return utf8.AppendRune(make([]byte, 0, utf8.UTFMax), r), true
}

// String returns the Vim-style specification of k.
// The result parses back to k.Canonical().
// Examples: "a", "A", "<Space>", "<Esc>", "<C-s>", "<S-Tab>"
func (k Key) String() string {
	k = k.Canonical()

	if k.IsRune() && k.Mods == ModNone {
		switch k.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		}
		if unicode.IsPrint(k.Rune) {
			return string(k.Rune)
		}
	}

	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(k.Mods.Prefix())

	switch {
	case !k.IsRune():
		sb.WriteString(k.Symbol.String())
	case k.Rune == ' ':
		sb.WriteString("Space")
	case k.Rune == '<':
		sb.WriteString("lt")
	case k.Rune == '>':
		sb.WriteString("gt")
	case k.Rune == '-':
		sb.WriteString("minus")
	case unicode.IsPrint(k.Rune):
		sb.WriteRune(k.Rune)
	default:
		fmt.Fprintf(&sb, "U+%04X", k.Rune)
	}
	sb.WriteByte('>')
	return sb.String()
}

// GoString implements fmt.GoStringer for debugging.
func (k Key) GoString() string {
	return fmt.Sprintf("Key{Rune: %q, Symbol: %s, Mods: %s}", k.Rune, k.Symbol, k.Mods)
}

// upperCasers holds x/text casers, which are stateful and not safe for
// concurrent use.
var upperCasers = sync.Pool{
	New: func() any {
		c := cases.Upper(language.Und)
		return &c
	},
}

// upper returns the single-rune upper case form of r.
// Runes whose full case mapping expands to several runes ('ß' to "SS") fall
// back to the simple mapping.
func upper(r rune) rune {
	c := upperCasers.Get().(*cases.Caser)
	s := c.String(string(r))
	upperCasers.Put(c)

	if u, size := utf8.DecodeRuneInString(s); size == len(s) && u != utf8.RuneError {
		return u
	}
	return unicode.ToUpper(r)
}
