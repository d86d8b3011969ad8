package mode

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Mode
	}{
		{"normal", Normal},
		{"INSERT", Insert},
		{" select ", Select},
		{"visual", Select},
		{"command", Command},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			if err != nil || got != tt.want {
				t.Errorf("Parse(%q) = %v, %v, want %v", tt.name, got, err, tt.want)
			}
		})
	}

	if _, err := Parse("replace"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Parse(replace) error = %v, want ErrUnknownMode", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	if len(All()) != Count {
		t.Fatalf("All() has %d modes, Count = %d", len(All()), Count)
	}
	for _, m := range All() {
		got, err := Parse(m.String())
		if err != nil || got != m {
			t.Errorf("Parse(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got := Mode(9).String(); got != "Mode(9)" {
		t.Errorf("invalid mode String() = %q", got)
	}
	if got := Insert.DisplayName(); got != "INSERT" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestTextMarshaling(t *testing.T) {
	text, err := Command.MarshalText()
	if err != nil || string(text) != "command" {
		t.Fatalf("MarshalText() = %q, %v", text, err)
	}

	var m Mode
	if err := m.UnmarshalText([]byte("insert")); err != nil || m != Insert {
		t.Errorf("UnmarshalText(insert) = %v, %v", m, err)
	}
	if err := m.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText should reject unknown names")
	}
	if _, err := Mode(9).MarshalText(); err == nil {
		t.Error("MarshalText should reject invalid modes")
	}
}

func TestCursorStyle(t *testing.T) {
	tests := []struct {
		mode Mode
		want CursorStyle
	}{
		{Normal, CursorBlock},
		{Insert, CursorBar},
		{Select, CursorUnderline},
		{Command, CursorBar},
	}

	for _, tt := range tests {
		if got := tt.mode.CursorStyle(); got != tt.want {
			t.Errorf("%v.CursorStyle() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
