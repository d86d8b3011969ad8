package key

import "encoding/binary"

// EncodedSize is the length of a Key's trie encoding.
const EncodedSize = 6

// Encoding encodes keys for a trie.Trie as [symbol][mods][rune big-endian].
// Keys are canonicalized first.
type Encoding struct{}

// Size implements trie.Encoding.
func (Encoding) Size() int { return EncodedSize }

// Append implements trie.Encoding.
func (Encoding) Append(dst []byte, k Key) []byte {
	k = k.Canonical()
	dst = append(dst, byte(k.Symbol), byte(k.Mods))
	return binary.BigEndian.AppendUint32(dst, uint32(k.Rune))
}

// Decode reverses Append.
func (Encoding) Decode(b []byte) (Key, bool) {
	if len(b) != EncodedSize {
		return Key{}, false
	}
	k := Key{
		Symbol: Symbol(b[0]),
		Mods:   Modifier(b[1]),
		Rune:   rune(binary.BigEndian.Uint32(b[2:])),
	}
	if !k.Symbol.IsValid() {
		return Key{}, false
	}
	return k, true
}
