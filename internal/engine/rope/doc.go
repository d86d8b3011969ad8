// Package rope provides a binary rope for efficient text storage and editing.
//
// A rope is a binary tree whose leaves hold short byte strings and whose
// branches cache two summaries of their subtree:
//
//   - weight: the byte length of the left child
//   - span:   the Position reached after consuming the whole subtree,
//     i.e. the newline count and the characters after the last newline
//
// These summaries give O(log n) mapping between byte offsets and (row, col)
// positions and O(1) concatenation.
//
// # Ownership
//
// Ropes are single-owner values. Insert, Split, Delete, Concat and Balance
// consume their operands and return new roots; a consumed *Rope panics on any
// further use. Destroy releases every node back to an internal pool and must
// run at most once per root. A Rope is not safe for concurrent use.
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")          // "hello, world"
//	r = r.Delete(0, 7)            // "world"
//	text := r.String()            // "world"
//	r.Destroy()
//
// Offsets are byte offsets and must fall on UTF-8 boundaries. Columns count
// characters (code points).
package rope
