// Package key defines key press values and parsing for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Symbol: identifies a non-character key (Escape, Enter, arrows, F1-F12)
//   - Modifier: represents modifier keys (Shift, Ctrl, Alt)
//   - Key: a single immutable key press, either a rune or a Symbol
//   - Sequence: a series of keys forming a chord
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "A", "1", "Enter", "Escape"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P", "C-q"
//   - Vim-style: "<C-s>", "<A-f>", "<C-S-p>", "<CR>", "<Esc>"
//
// Sequences are space separated ("g g", "Z Q") or written contiguously
// ("gg", "<C-x><C-s>").
//
// # Trie Encoding
//
// Encoding expands a Key to a fixed six byte canonical form so keys can be
// used as trie elements. Shifted letters are folded to their upper case
// form first, so "A" and "S-a" bind the same chord.
package key
