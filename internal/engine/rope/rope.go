package rope

import (
	"io"
	"math/bits"
)

// Rope is a single-owner binary rope.
// Operations that consume a rope leave it unusable; see the package docs.
type Rope struct {
	root     *node
	consumed bool
}

// New creates an empty rope.
func New() *Rope {
	return &Rope{root: newLeaf(nil)}
}

// FromString creates a rope holding a copy of s.
func FromString(s string) *Rope {
	return &Rope{root: build(s)}
}

func fromNode(n *node) *Rope {
	return &Rope{root: n}
}

// node returns the root, panicking if r was consumed.
func (r *Rope) node() *node {
	if r.consumed {
		panic("rope: use of consumed rope")
	}
	if r.root == nil {
		r.root = newLeaf(nil)
	}
	return r.root
}

// take detaches and returns the root, marking r consumed.
func (r *Rope) take() *node {
	n := r.node()
	r.root = nil
	r.consumed = true
	return n
}

// Destroy releases every node of r. r must not be used afterwards.
func (r *Rope) Destroy() {
	destroy(r.take())
}

// Len returns the total byte length.
func (r *Rope) Len() int {
	return r.node().length()
}

// Span returns the position reached after the last byte.
func (r *Rope) Span() Position {
	return r.node().span
}

// IsEmpty reports whether the rope holds no text.
func (r *Rope) IsEmpty() bool {
	return r.node().span == Position{}
}

// LineCount returns the number of lines (newlines + 1).
// An empty rope has one line, and a trailing newline starts an empty last line.
func (r *Rope) LineCount() int {
	return r.node().span.Row + 1
}

// String collects the full text.
// Use sparingly for large ropes.
func (r *Rope) String() string {
	n := r.node()
	return string(n.appendTo(make([]byte, 0, n.length())))
}

// Depth returns the height of the tree; a single leaf has depth 1.
func (r *Rope) Depth() int {
	return r.node().height
}

// Concat joins left and right in O(1), consuming both.
func Concat(left, right *Rope) *Rope {
	l, rn := left.take(), right.take()
	return fromNode(concatNodes(l, rn))
}

func concatNodes(l, r *node) *node {
	if l.leaf && len(l.text) == 0 {
		DefaultPool.put(l)
		return r
	}
	if r.leaf && len(r.text) == 0 {
		DefaultPool.put(r)
		return l
	}
	return newBranch(l, r)
}

// Insert splices text at byte offset index and returns the new rope.
// r is consumed. index must lie in [0, Len()].
func (r *Rope) Insert(index int, text string) *Rope {
	root := r.take()
	if len(text) == 0 {
		return fromNode(root)
	}

	inserted := build(text)
	switch index {
	case 0:
		return fromNode(concatNodes(inserted, root))
	case root.length():
		return fromNode(concatNodes(root, inserted))
	}

	root = fragmentAt(root, index)
	left, right := splitHelp(root, index)
	return fromNode(concatNodes(concatNodes(left, inserted), right))
}

// Split divides r at byte offset index, consuming r.
// The left rope holds [0, index) and the right rope [index, Len()).
func (r *Rope) Split(index int) (*Rope, *Rope) {
	root := r.take()
	if index <= 0 {
		return New(), fromNode(root)
	}
	if index >= root.length() {
		return fromNode(root), New()
	}

	root = fragmentAt(root, index)
	left, right := splitHelp(root, index)
	return fromNode(left), fromNode(right)
}

// Delete removes the bytes in [start, end), consuming r.
func (r *Rope) Delete(start, end int) *Rope {
	if start >= end {
		return fromNode(r.take())
	}
	left, rest := r.Split(start)
	mid, right := rest.Split(end - start)
	mid.Destroy()
	return Concat(left, right)
}

// Balance rebuilds r as a balanced tree over its existing leaves, consuming r.
// Leaf text is not copied.
func (r *Rope) Balance() *Rope {
	leaves := collectLeaves(r.take(), nil)
	return fromNode(joinBalanced(leaves))
}

// NeedsBalance reports whether the tree has grown much deeper than a
// balanced tree over the same bytes would be.
func (r *Rope) NeedsBalance() bool {
	leaves := r.Len()/MaxLeafLen + 1
	return r.Depth() > 2*bits.Len(uint(leaves))+8
}

// IndexFromPosition maps a row/column position to a byte offset.
// It fails if pos.Row is past the last row, or on the last row past its end.
// Columns past the end of an earlier row are not checked.
func (r *Rope) IndexFromPosition(pos Position) (int, bool) {
	n := r.node()
	if pos.Row < 0 || pos.Col < 0 {
		return 0, false
	}
	if n.span.Less(pos) {
		return 0, false
	}
	return indexOf(n, pos), true
}

// PositionFromIndex maps a byte offset to a row/column position.
// Offsets past the end map to the end position.
func (r *Rope) PositionFromIndex(index int) Position {
	n := r.node()
	if index <= 0 {
		return Position{}
	}
	return positionOf(n, index)
}

// LineStart returns the byte offset of the first byte of line.
func (r *Rope) LineStart(line int) (int, bool) {
	return r.IndexFromPosition(Position{Row: line})
}

// LineLength returns the length of line in characters.
// Every line but the last includes its terminating newline.
func (r *Rope) LineLength(line int) (int, bool) {
	n := r.node()
	if line < 0 || line > n.span.Row {
		return 0, false
	}
	if line == n.span.Row {
		return n.span.Col, true
	}

	next := indexOf(n, Position{Row: line + 1})
	// next-1 is the newline ending line.
	return positionOf(n, next-1).Col + 1, true
}

// WriteTo streams the rope's chunks to w.
func (r *Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := r.Chunks()
	for it.Next() {
		n, err := w.Write(it.Chunk())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Validate checks the cached weights and spans of every branch.
func (r *Rope) Validate() error {
	return r.node().validate()
}
