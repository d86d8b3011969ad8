package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// ParseError records the specification that failed to parse.
type ParseError struct {
	Spec string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse key %q: %v", e.Spec, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses a key specification string into a Key.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Vim-style: "<C-s>", "<A-f>", "<C-S-p>", "<CR>", "<Esc>", or bare "C-s"
func Parse(spec string) (Key, error) {
	k, err := parse(spec)
	if err != nil {
		return Key{}, &ParseError{Spec: spec, Err: err}
	}
	return k, nil
}

func parse(spec string) (Key, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Key{}, ErrEmptySpec
	}

	// Vim-style <...> notation
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}
	if strings.HasPrefix(spec, "<") && len(spec) > 1 {
		return Key{}, ErrUnmatchedBracket
	}

	// Modifier+key format (Ctrl+S, Alt+F4)
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	// Bare Vim-style modifiers (C-s, A-x)
	if hasModifierPrefix(spec) {
		return parseVimStyle(spec)
	}

	return parseKeyWithModifiers(spec, ModNone)
}

// hasModifierPrefix reports whether spec looks like "C-x".
func hasModifierPrefix(spec string) bool {
	if len(spec) < 3 || spec[1] != '-' {
		return false
	}
	return ModifierFromName(spec[:1]) != ModNone
}

// parseVimStyle parses Vim-style notation like "C-s", "A-F4", "CR", "Esc"
func parseVimStyle(inner string) (Key, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Key{}, ErrInvalidSpec
	}

	var mods Modifier
	// Every "X-" prefix is a modifier; the rest is the key. This keeps "C--"
	// meaning Ctrl and minus.
	for len(inner) > 2 && inner[1] == '-' {
		mod := ModifierFromName(inner[:1])
		if mod == ModNone {
			return Key{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, inner[:1])
		}
		mods = mods.With(mod)
		inner = inner[2:]
	}

	return parseKeyWithModifiers(inner, mods)
}

// parseModifierStyle parses "Ctrl+S" style notation
func parseModifierStyle(spec string) (Key, error) {
	// A trailing "+" is the plus key itself: "Ctrl++".
	keyPart := "+"
	body := spec
	if strings.HasSuffix(spec, "++") {
		body = spec[:len(spec)-2]
	} else {
		i := strings.LastIndexByte(spec, '+')
		body, keyPart = spec[:i], spec[i+1:]
	}

	var mods Modifier
	for _, p := range strings.Split(body, "+") {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Key{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}

	// "Ctrl+S" names the S key; Shift must be spelled out.
	keyPart = strings.TrimSpace(keyPart)
	if utf8.RuneCountInString(keyPart) == 1 {
		keyPart = strings.ToLower(keyPart)
	}
	return parseKeyWithModifiers(keyPart, mods)
}

// parseKeyWithModifiers parses a key part with already-known modifiers
func parseKeyWithModifiers(keyPart string, mods Modifier) (Key, error) {
	if keyPart == "" {
		return Key{}, ErrInvalidSpec
	}

	// Single character
	if r, size := utf8.DecodeRuneInString(keyPart); size == len(keyPart) && r != utf8.RuneError {
		return NewRune(r, mods).Canonical(), nil
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return NewRune(' ', mods), nil
	case "lt":
		return NewRune('<', mods), nil
	case "gt":
		return NewRune('>', mods), nil
	case "bar":
		return NewRune('|', mods), nil
	case "bslash":
		return NewRune('\\', mods), nil
	case "minus":
		return NewRune('-', mods), nil
	}

	if s := SymbolFromName(keyPart); s != SymbolNone {
		return NewSymbol(s, mods), nil
	}

	return Key{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Key {
	k, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return k
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	k, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return k.String(), nil
}
