package rope

import (
	"io"
	"strings"
)

// Builder accumulates text and builds a rope in one pass.
// It implements io.Writer so buffers can be loaded with io.Copy.
type Builder struct {
	buffer strings.Builder
}

// NewBuilder creates a new rope builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	return b.buffer.WriteString(s)
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.buffer.Write(p)
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	return b.buffer.WriteByte(c)
}

// WriteRune appends a single rune.
func (b *Builder) WriteRune(r rune) (int, error) {
	return b.buffer.WriteRune(r)
}

// Len returns the total number of bytes written.
func (b *Builder) Len() int {
	return b.buffer.Len()
}

// Build creates the rope and resets the builder.
func (b *Builder) Build() *Rope {
	r := FromString(b.buffer.String())
	b.buffer.Reset()
	return r
}

// FromReader creates a rope from everything r yields.
func FromReader(r io.Reader) (*Rope, error) {
	var b Builder
	if _, err := io.Copy(&b, r); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// FromLines joins lines with newlines into a rope.
func FromLines(lines []string) *Rope {
	return FromString(strings.Join(lines, "\n"))
}
