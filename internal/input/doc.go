// Package input turns a stream of decoded keys into editor actions.
//
// The ActionContext is the chord resolver. It owns the current mode, the
// keymaps in effect, a small queue of pending keys and an outgoing queue of
// mode-tagged actions.
//
// # Chords
//
// A key that extends the pending keys to a bound sequence with no longer
// extension resolves immediately. A key that extends them to a sequence that
// could still grow is held. A key that cannot extend them flushes the
// pending keys by repeated longest-prefix lookup, and pending keys nobody
// bound are inserted as text when they have a text form.
//
// Ambiguity is resolved by polling: the caller invokes CheckTimeout on every
// iteration of its loop, and HandleKey runs it before looking at the new key.
// Nothing is scheduled in the background, so an ActionContext is only ever
// touched by the goroutine that owns it.
//
// # Usage
//
//	ac := input.NewActionContext(keymap.Default(), input.DefaultConfig())
//
//	for {
//	    ac.CheckTimeout()
//	    for k, ok := keys.TryPop(); ok; k, ok = keys.TryPop() {
//	        ac.HandleKey(k)
//	    }
//	    for ca, ok := ac.Pop(); ok; ca, ok = ac.Pop() {
//	        doc.Apply(ca)
//	    }
//	}
package input
