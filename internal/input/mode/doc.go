// Package mode defines the editor-wide modal state.
//
// Mode is a closed enum shared by the keymap tries, the keymaps themselves
// and the action context. Each mode selects one keymap trie:
//
//   - Normal: navigation and commands
//   - Insert: text input
//   - Select: character-wise selection
//   - Command: command line
//
// Modes marshal to and from their lower-case names so configuration files
// can refer to them directly.
package mode
