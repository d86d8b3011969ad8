package rope

import "bytes"

// LeafIterator visits the leaves of a rope in order.
// It keeps an explicit stack of pending branches and never recurses.
// Iterators are forward-only; the rope must not be modified while one is live.
type LeafIterator struct {
	root    *node
	stack   []*node
	cur     *node
	started bool
}

// leaves returns an iterator over the rope's leaves.
func (r *Rope) leaves() *LeafIterator {
	return &LeafIterator{
		root:  r.node(),
		stack: make([]*node, 0, 16),
	}
}

// descend pushes the left spine below n and returns its leftmost leaf.
func (it *LeafIterator) descend(n *node) *node {
	for !n.leaf {
		it.stack = append(it.stack, n)
		n = n.left
	}
	return n
}

// Next advances to the next leaf.
func (it *LeafIterator) Next() bool {
	if !it.started {
		it.started = true
		it.cur = it.descend(it.root)
		return true
	}
	if len(it.stack) == 0 {
		it.cur = nil
		return false
	}
	parent := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	it.cur = it.descend(parent.right)
	return true
}

func (it *LeafIterator) leaf() *node {
	return it.cur
}

// ChunkIterator yields the raw bytes of each leaf.
type ChunkIterator struct {
	leaves *LeafIterator
}

// Chunks returns an iterator over the rope's leaf byte strings.
// Empty leaves are skipped.
func (r *Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{leaves: r.leaves()}
}

// Next advances to the next non-empty chunk.
func (it *ChunkIterator) Next() bool {
	for it.leaves.Next() {
		if len(it.leaves.leaf().text) > 0 {
			return true
		}
	}
	return false
}

// Chunk returns the current chunk. The slice must not be modified.
func (it *ChunkIterator) Chunk() []byte {
	return it.leaves.leaf().text
}

// LineIterator yields the rope's lines without their newline.
// A rope always yields LineCount lines.
type LineIterator struct {
	leaves  *LeafIterator
	partial []byte
	ready   [][]byte
	line    []byte
	done    bool
}

// Lines returns an iterator over the rope's lines.
func (r *Rope) Lines() *LineIterator {
	return &LineIterator{leaves: r.leaves()}
}

// Next advances to the next line.
func (it *LineIterator) Next() bool {
	for len(it.ready) == 0 {
		if it.done {
			it.line = nil
			return false
		}
		if !it.leaves.Next() {
			// The final line has no terminating newline.
			it.done = true
			it.ready = append(it.ready, it.partial)
			it.partial = nil
			break
		}
		it.consume(it.leaves.leaf())
	}

	it.line = it.ready[0]
	it.ready = it.ready[1:]
	return true
}

// consume folds one leaf into the pending lines.
// A leaf without newlines is appended whole; only a leaf crossing a line
// boundary is scanned.
func (it *LineIterator) consume(n *node) {
	text := n.text
	if n.span.Row == 0 {
		it.partial = append(it.partial, text...)
		return
	}

	for {
		i := bytes.IndexByte(text, '\n')
		if i < 0 {
			break
		}
		line := append(it.partial, text[:i]...)
		it.ready = append(it.ready, line)
		it.partial = nil
		text = text[i+1:]
	}
	it.partial = append([]byte(nil), text...)
}

// Text returns the current line.
func (it *LineIterator) Text() string {
	return string(it.line)
}

// Bytes returns the current line. The slice is only valid until Next.
func (it *LineIterator) Bytes() []byte {
	return it.line
}
