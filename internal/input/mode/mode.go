package mode

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is one of the editor modes.
type Mode uint8

const (
	Normal Mode = iota
	Insert
	Select
	Command

	count
)

// ErrUnknownMode is returned when parsing an unrecognized mode name.
var ErrUnknownMode = errors.New("unknown mode")

var names = [count]string{
	Normal:  "normal",
	Insert:  "insert",
	Select:  "select",
	Command: "command",
}

// Count is the number of modes.
const Count = int(count)

// All returns every mode in declaration order.
func All() []Mode {
	return []Mode{Normal, Insert, Select, Command}
}

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	return m < count
}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if m.IsValid() {
		return names[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// DisplayName returns the name shown in the status line.
func (m Mode) DisplayName() string {
	return strings.ToUpper(m.String())
}

// Parse returns the mode with the given name (case-insensitive).
// "visual" is accepted as an alias for Select.
func Parse(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range names {
		if n == name {
			return Mode(m), nil
		}
	}
	if name == "visual" {
		return Select, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}

// CursorStyle returns the cursor style for m.
func (m Mode) CursorStyle() CursorStyle {
	switch m {
	case Insert, Command:
		return CursorBar
	case Select:
		return CursorUnderline
	default:
		return CursorBlock
	}
}
