// Package keymap maps key sequences to actions, one trie per mode.
//
// # Key Concepts
//
// Keymaps: one trie.Trie[key.Key, action.Action] per mode. Built once and
// then treated as shared, read-only state.
//
// Binding: the textual form of a mapping as it appears in configuration
// files and scripts: a mode, a key sequence and an action name. An empty
// action name unbinds the sequence.
//
// Patch: a parsed Binding. A nil Action means "unbind".
//
// Patched: a base Keymaps plus an append-only list of patches. The merged
// view is rebuilt lazily the first time it is asked for after a patch is
// added, so the base is never mutated and can be shared between contexts.
//
// # Key Sequence Parsing
//
// Key sequences can be specified in multiple formats:
//
//	"j"        - Single character
//	"g g"      - Multi-key sequence
//	"C-s"      - Ctrl+S (Vim notation)
//	"<C-s>"    - Ctrl+S (angle bracket notation)
//	"Ctrl+S"   - Ctrl+S (readable notation)
//
// # Usage
//
//	km := keymap.NewPatched(keymap.Default())
//	km.Bind(mode.Normal, key.MustParseSequence("g g"), action.Up)
//
//	node, ok := km.Keymaps().Walk(mode.Normal, pending)
//	if ok && node.HasChildren() {
//	    // Wait for more keys
//	}
package keymap
