// Package action defines the editing actions produced by chord resolution.
package action

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/kestrel/internal/input/mode"
)

// MaxInsertBytes is the largest payload of an InsertBytes action: one
// UTF-8 encoded character.
const MaxInsertBytes = utf8.UTFMax

// ErrUnknownAction is returned when parsing an unrecognized action name.
var ErrUnknownAction = errors.New("unknown action")

// Kind discriminates the Action variants.
type Kind uint8

const (
	// KindNone is the zero Kind; it is never emitted.
	KindNone Kind = iota
	KindUp
	KindDown
	KindLeft
	KindRight
	KindTab
	KindBackspace
	KindDelete
	KindQuit
	KindChangeMode
	KindInsertBytes
)

var kindNames = map[Kind]string{
	KindUp:        "cursor.up",
	KindDown:      "cursor.down",
	KindLeft:      "cursor.left",
	KindRight:     "cursor.right",
	KindTab:       "edit.tab",
	KindBackspace: "edit.backspace",
	KindDelete:    "edit.delete",
	KindQuit:      "editor.quit",
}

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindChangeMode:
		return "mode"
	case KindInsertBytes:
		return "insert"
	}
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Action is one editing command. Actions are comparable values.
type Action struct {
	Kind Kind

	target mode.Mode
	text   [MaxInsertBytes]byte
	n      uint8
}

// Actions without a payload.
var (
	Up        = Action{Kind: KindUp}
	Down      = Action{Kind: KindDown}
	Left      = Action{Kind: KindLeft}
	Right     = Action{Kind: KindRight}
	Tab       = Action{Kind: KindTab}
	Backspace = Action{Kind: KindBackspace}
	Delete    = Action{Kind: KindDelete}
	Quit      = Action{Kind: KindQuit}
)

// ChangeMode returns an action switching to m.
func ChangeMode(m mode.Mode) Action {
	return Action{Kind: KindChangeMode, target: m}
}

// InsertBytes returns an action inserting b.
// It fails if b is empty or longer than MaxInsertBytes.
func InsertBytes(b []byte) (Action, bool) {
	if len(b) == 0 || len(b) > MaxInsertBytes {
		return Action{}, false
	}
	a := Action{Kind: KindInsertBytes, n: uint8(len(b))}
	copy(a.text[:], b)
	return a, true
}

// InsertRune returns an action inserting the UTF-8 encoding of r.
func InsertRune(r rune) Action {
	a := Action{Kind: KindInsertBytes}
	a.n = uint8(utf8.EncodeRune(a.text[:], r))
	return a
}

// Target returns the mode a ChangeMode action switches to.
func (a Action) Target() (mode.Mode, bool) {
	return a.target, a.Kind == KindChangeMode
}

// Bytes returns the payload of an InsertBytes action.
func (a Action) Bytes() []byte {
	if a.Kind != KindInsertBytes {
		return nil
	}
	return a.text[:a.n:a.n]
}

// IsZero reports whether a is the zero Action.
func (a Action) IsZero() bool {
	return a.Kind == KindNone
}

// String returns the configuration name of a.
// Examples: "cursor.up", "mode.insert", "insert:x"
func (a Action) String() string {
	switch a.Kind {
	case KindChangeMode:
		return "mode." + a.target.String()
	case KindInsertBytes:
		return "insert:" + string(a.Bytes())
	}
	return a.Kind.String()
}

// aliases maps short names to payload-free actions.
var aliases = map[string]Action{
	"up":        Up,
	"down":      Down,
	"left":      Left,
	"right":     Right,
	"tab":       Tab,
	"backspace": Backspace,
	"delete":    Delete,
	"quit":      Quit,
}

// Parse returns the action with the given configuration name.
// Accepted forms are the String forms plus the short aliases "up", "quit"
// and so on.
func Parse(name string) (Action, error) {
	name = strings.TrimSpace(name)

	if text, ok := strings.CutPrefix(name, "insert:"); ok {
		a, ok := InsertBytes([]byte(text))
		if !ok {
			return Action{}, fmt.Errorf("%w: insert payload %q must be 1-%d bytes", ErrUnknownAction, text, MaxInsertBytes)
		}
		return a, nil
	}

	lower := strings.ToLower(name)
	if target, ok := strings.CutPrefix(lower, "mode."); ok {
		m, err := mode.Parse(target)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %q: %w", ErrUnknownAction, name, err)
		}
		return ChangeMode(m), nil
	}

	if a, ok := aliases[lower]; ok {
		return a, nil
	}
	for k, n := range kindNames {
		if n == lower {
			return Action{Kind: k}, nil
		}
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if a.IsZero() {
		return nil, fmt.Errorf("%w: zero action", ErrUnknownAction)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Contextual pairs an action with the mode that was active when it was
// produced.
type Contextual struct {
	Action Action
	Mode   mode.Mode
}

// String returns "action@mode".
func (c Contextual) String() string {
	return c.Action.String() + "@" + c.Mode.String()
}
