package rope

import (
	"bytes"
	"unicode/utf8"
)

// Position is a zero-based row/column coordinate.
// Col counts characters, not bytes.
type Position struct {
	Row int
	Col int
}

// Less reports whether p comes strictly before q.
func (p Position) Less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// combine returns the span of a followed by b.
func combine(a, b Position) Position {
	if b.Row > 0 {
		return Position{Row: a.Row + b.Row, Col: b.Col}
	}
	return Position{Row: a.Row, Col: a.Col + b.Col}
}

// spanOf computes the span of a byte string.
func spanOf(text []byte) Position {
	var span Position
	last := bytes.LastIndexByte(text, '\n')
	if last >= 0 {
		span.Row = bytes.Count(text, newline)
	}
	span.Col = countChars(text[last+1:])
	return span
}

var newline = []byte{'\n'}

// countChars counts UTF-8 leading bytes.
// Counting leading bytes instead of decoding keeps the count additive even
// when a string is cut inside a multi-byte sequence.
func countChars(text []byte) int {
	n := 0
	for _, b := range text {
		if utf8.RuneStart(b) {
			n++
		}
	}
	return n
}

// advanceChars returns the byte index reached after skipping n characters
// of text starting at i.
func advanceChars(text []byte, i, n int) int {
	for ; n > 0 && i < len(text); n-- {
		i++
		for i < len(text) && !utf8.RuneStart(text[i]) {
			i++
		}
	}
	return i
}

// snapToRuneStart moves mid to a nearby rune start inside (0, len(s)).
// Falls back to mid itself when s holds no interior rune start.
func snapToRuneStart(s string, mid int) int {
	for i := mid; i > 0; i-- {
		if utf8.RuneStart(s[i]) {
			return i
		}
	}
	for i := mid + 1; i < len(s); i++ {
		if utf8.RuneStart(s[i]) {
			return i
		}
	}
	return mid
}
