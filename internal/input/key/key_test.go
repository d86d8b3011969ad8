package key

import (
	"bytes"
	"testing"
)

func TestSymbolString(t *testing.T) {
	tests := []struct {
		sym  Symbol
		want string
	}{
		{SymbolNone, "None"},
		{SymEscape, "Esc"},
		{SymEnter, "CR"},
		{SymTab, "Tab"},
		{SymBackspace, "BS"},
		{SymDelete, "Del"},
		{SymUp, "Up"},
		{SymRight, "Right"},
		{SymF1, "F1"},
		{SymF12, "F12"},
		{symbolCount, "Symbol(27)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.sym.String(); got != tt.want {
				t.Errorf("Symbol.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSymbolClasses(t *testing.T) {
	if !SymF6.IsFunctionKey() || SymEscape.IsFunctionKey() {
		t.Error("IsFunctionKey misclassifies")
	}
	if !SymLeft.IsArrowKey() || SymHome.IsArrowKey() {
		t.Error("IsArrowKey misclassifies")
	}
	if SymbolFromName("PgDn") != SymPageDown || SymbolFromName("nope") != SymbolNone {
		t.Error("SymbolFromName lookup failed")
	}
}

func TestKeyText(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		want   string
		wantOK bool
	}{
		{"letter", NewRune('a', ModNone), "a", true},
		{"upper", NewRune('A', ModNone), "A", true},
		{"shifted letter", NewRune('a', ModShift), "A", true},
		{"shifted digit", NewRune('1', ModShift), "1", true},
		{"multibyte", NewRune('世', ModNone), "世", true},
		{"shifted accent", NewRune('é', ModShift), "É", true},
		{"emoji", NewRune('🌍', ModNone), "🌍", true},
		{"space", NewRune(' ', ModNone), " ", true},
		{"enter", NewSymbol(SymEnter, ModNone), "\n", true},
		{"tab", NewSymbol(SymTab, ModNone), "\t", true},
		{"ctrl letter", NewRune('s', ModCtrl), "", false},
		{"alt letter", NewRune('x', ModAlt), "", false},
		{"ctrl enter", NewSymbol(SymEnter, ModCtrl), "", false},
		{"escape", NewSymbol(SymEscape, ModNone), "", false},
		{"arrow", NewSymbol(SymUp, ModNone), "", false},
		{"control rune", NewRune(0x01, ModNone), "", false},
		{"invalid rune", NewRune(0xD800, ModNone), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.key.Text()
			if ok != tt.wantOK || !bytes.Equal(got, []byte(tt.want)) && tt.wantOK {
				t.Errorf("Text() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
			if len(got) > 4 {
				t.Errorf("Text() returned %d bytes", len(got))
			}
		})
	}
}

func TestKeyCanonical(t *testing.T) {
	tests := []struct {
		key  Key
		want Key
	}{
		{NewRune('a', ModShift), NewRune('A', ModNone)},
		{NewRune('A', ModShift), NewRune('A', ModNone)},
		{NewRune('a', ModNone), NewRune('a', ModNone)},
		{NewRune('1', ModShift), NewRune('1', ModShift)},
		{NewRune('p', ModCtrl|ModShift), NewRune('P', ModCtrl)},
		{NewSymbol(SymTab, ModShift), NewSymbol(SymTab, ModShift)},
	}

	for _, tt := range tests {
		if got := tt.key.Canonical(); got != tt.want {
			t.Errorf("%#v.Canonical() = %#v, want %#v", tt.key, got, tt.want)
		}
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{NewRune('a', ModNone), "a"},
		{NewRune('a', ModShift), "A"},
		{NewRune(' ', ModNone), "<Space>"},
		{NewRune('<', ModNone), "<lt>"},
		{NewRune('s', ModCtrl), "<C-s>"},
		{NewRune('-', ModCtrl), "<C-minus>"},
		{NewRune('x', ModCtrl|ModAlt), "<C-A-x>"},
		{NewSymbol(SymEscape, ModNone), "<Esc>"},
		{NewSymbol(SymTab, ModShift), "<S-Tab>"},
		{NewSymbol(SymF5, ModAlt), "<A-F5>"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	var enc Encoding
	keys := []Key{
		NewRune('a', ModNone),
		NewRune('世', ModCtrl),
		NewRune('🌍', ModAlt),
		NewSymbol(SymF12, ModShift|ModCtrl),
		NewSymbol(SymEscape, ModNone),
	}

	for _, k := range keys {
		b := enc.Append(nil, k)
		if len(b) != enc.Size() {
			t.Fatalf("encoding of %v has %d bytes, want %d", k, len(b), enc.Size())
		}
		got, ok := enc.Decode(b)
		if !ok || got != k {
			t.Errorf("Decode(Append(%#v)) = %#v, %v", k, got, ok)
		}
	}

	if a, b := enc.Append(nil, NewRune('a', ModShift)), enc.Append(nil, NewRune('A', ModNone)); !bytes.Equal(a, b) {
		t.Error("shifted and upper case letters should encode identically")
	}
	if _, ok := enc.Decode([]byte{byte(symbolCount), 0, 0, 0, 0, 0}); ok {
		t.Error("Decode should reject unknown symbols")
	}
	if _, ok := enc.Decode([]byte{0}); ok {
		t.Error("Decode should reject short input")
	}
}

func TestModifier(t *testing.T) {
	mod := ModNone.With(ModCtrl).With(ModAlt)
	if !mod.HasCtrl() || !mod.HasAlt() || mod.HasShift() {
		t.Errorf("unexpected modifiers %v", mod)
	}
	if got := mod.String(); got != "Ctrl+Alt" {
		t.Errorf("String() = %q", got)
	}
	if got := mod.Without(ModAlt).With(ModShift).Prefix(); got != "C-S-" {
		t.Errorf("Prefix() = %q", got)
	}
	if ModNone.String() != "" || ModNone.Prefix() != "" || mod.Has(ModNone) {
		t.Error("ModNone misreports")
	}
	if !mod.Has(ModCtrl|ModAlt) || mod.Has(ModCtrl|ModShift) {
		t.Error("Has should require every modifier")
	}
	if ModifierFromName(" Control ") != ModCtrl || ModifierFromName("hyper") != ModNone {
		t.Error("ModifierFromName lookup failed")
	}
}
