package trie

// Encoding expands a key into its canonical byte form.
// Every key of a given Encoding must encode to exactly Size bytes.
type Encoding[K any] interface {
	// Size is the encoded length of a single key.
	Size() int

	// Append appends the encoding of k to dst and returns the extended slice.
	Append(dst []byte, k K) []byte
}

// ByteEncoding is the identity encoding for byte keys.
// It is used for tries over raw input such as terminal escape sequences.
type ByteEncoding struct{}

// Size returns 1.
func (ByteEncoding) Size() int { return 1 }

// Append appends b unchanged.
func (ByteEncoding) Append(dst []byte, b byte) []byte {
	return append(dst, b)
}

// RuneEncoding encodes a rune as four big-endian bytes.
type RuneEncoding struct{}

// Size returns 4.
func (RuneEncoding) Size() int { return 4 }

// Append appends the big-endian code point of r.
func (RuneEncoding) Append(dst []byte, r rune) []byte {
	u := uint32(r)
	return append(dst, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}
