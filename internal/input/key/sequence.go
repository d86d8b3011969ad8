package key

import (
	"strings"
	"unicode/utf8"
)

// Sequence represents a series of keys forming a chord.
// Examples: "g g" (go to top), "Z Z" (quit), "j k" (leave insert mode)
type Sequence []Key

// String returns the keys' specifications separated by spaces.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// Equals returns true if two sequences are identical after canonicalization.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, k := range s {
		if k.Canonical() != other[i].Canonical() {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	return len(prefix) <= len(s) && s[:len(prefix)].Equals(prefix)
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// ParseSequence parses a key sequence string.
// The string can contain space-separated keys or a contiguous sequence.
// A string that parses as a single key is that key.
// Examples: "g g", "Z Q", "<C-x><C-s>", "gg", "C-q"
func ParseSequence(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &ParseError{Spec: s, Err: ErrEmptySpec}
	}

	var seq Sequence
	for _, part := range strings.Fields(s) {
		if k, err := Parse(part); err == nil {
			seq = append(seq, k)
			continue
		}

		keys, err := parseContiguous(part)
		if err != nil {
			return nil, err
		}
		seq = append(seq, keys...)
	}
	return seq, nil
}

// parseContiguous splits a run like "gg" or "<C-x><C-s>" into keys.
func parseContiguous(s string) (Sequence, error) {
	var seq Sequence
	for i := 0; i < len(s); {
		if s[i] == '<' {
			end := strings.IndexByte(s[i:], '>')
			if end > 1 {
				k, err := Parse(s[i : i+end+1])
				if err != nil {
					return nil, err
				}
				seq = append(seq, k)
				i += end + 1
				continue
			}
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError {
			return nil, &ParseError{Spec: s, Err: ErrInvalidSpec}
		}
		seq = append(seq, NewRune(r, ModNone))
		i += size
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}
