// Package trie provides a generic longest-prefix-match trie.
//
// A Trie maps sequences of keys to values. Every key is expanded by an
// Encoding into a canonical fixed-size byte string, and the concatenated
// bytes are stored in an implicit 256-way byte trie. Lookups operate one key
// at a time, so a match can only end on a key boundary.
//
// Two lookup flavours are provided:
//
//   - Lookup returns the value bound to exactly the given sequence.
//   - LookupLongest returns the value bound to the longest bound prefix of
//     the query, together with how many keys that prefix consumed.
//
// The keymap resolver relies on LookupLongest to flush an ambiguous pending
// chord: "a" and "a b" may both be bound, and "a x" must resolve to the
// action of "a" while leaving "x" for the next round.
//
// Remove clears a binding but never prunes the nodes that led to it. A trie
// that sees heavy churn keeps its dead branches until it is rebuilt.
package trie
