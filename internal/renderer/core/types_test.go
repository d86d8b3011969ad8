package core

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestColorFrom(t *testing.T) {
	c, err := colorful.Hex("#ff8040")
	if err != nil {
		t.Fatal(err)
	}
	got := ColorFrom(c)
	if got != ColorFromRGB(255, 128, 64) {
		t.Errorf("ColorFrom(#ff8040) = %v", got)
	}
	if got.String() != "#FF8040" {
		t.Errorf("String() = %q", got.String())
	}
	if ColorDefault.String() != "default" || !ColorDefault.IsDefault() {
		t.Error("ColorDefault should print as default")
	}

	out := colorful.Color{R: 1.2, G: -0.1, B: 0.5}
	if got := ColorFrom(out); got.R != 255 || got.G != 0 {
		t.Errorf("ColorFrom(out of gamut) = %v, want clamped", got)
	}
}

func TestStyle(t *testing.T) {
	s := DefaultStyle().WithForeground(ColorFromRGB(1, 2, 3)).WithBackground(ColorFromRGB(4, 5, 6)).Bold()
	if s.Foreground != ColorFromRGB(1, 2, 3) || s.Background != ColorFromRGB(4, 5, 6) {
		t.Errorf("style colors = %+v", s)
	}
	if !s.Attributes.Has(AttrBold) || s.Attributes.Has(AttrItalic) {
		t.Errorf("attributes = %b", s.Attributes)
	}
}

func TestWidths(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"日本", 4},
		{"é", 1},
		{"👍🏽", 2},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.s); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
	if RuneWidth('a') != 1 || RuneWidth('日') != 2 {
		t.Error("RuneWidth mismatch")
	}
}

func TestCellsFromString(t *testing.T) {
	style := DefaultStyle().Bold()
	cells := CellsFromString("a日é", style)

	if len(cells) != 4 {
		t.Fatalf("len(cells) = %d, want 4", len(cells))
	}
	if cells[0].Rune != 'a' || cells[0].Width != 1 {
		t.Errorf("cells[0] = %+v", cells[0])
	}
	if cells[1].Rune != '日' || cells[1].Width != 2 || !cells[2].IsContinuation() {
		t.Errorf("wide cell = %+v, %+v", cells[1], cells[2])
	}
	if cells[3].Rune != 'e' || len(cells[3].Combining) != 1 {
		t.Errorf("combining cell = %+v", cells[3])
	}
	for i, c := range cells {
		if c.Style != style {
			t.Errorf("cells[%d].Style = %+v", i, c.Style)
		}
	}

	if got := StringFromCells(cells); got != "a日é" {
		t.Errorf("StringFromCells() = %q", got)
	}
	if !EmptyCell().Style.Foreground.IsDefault() || EmptyCell().Rune != ' ' {
		t.Error("EmptyCell should be a default-styled space")
	}
}
