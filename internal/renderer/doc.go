// Package renderer draws a document frame to a terminal backend.
//
// The renderer is responsible for:
//   - Laying out visible lines with tab expansion and grapheme widths
//   - Scrolling to keep the cursor on screen
//   - The status line: mode, file, pending chord and cursor position
//   - The cursor shape for the current mode
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│      Renderer (Draw(Frame))             │
//	├─────────────────────────────────────────┤
//	│  Line layout │ Status line │ Theme      │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend         │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.ThemeFrom(theme), renderer.DefaultOptions())
//	r.Draw(renderer.Frame{Text: doc.Text(), Cursor: doc.Cursor(), Mode: ac.Mode()})
package renderer
