package rope

import (
	"bytes"
	"fmt"
)

// MaxLeafLen is the maximum byte length of a leaf built by FromString.
const MaxLeafLen = 64

// node is either a leaf holding text or a branch owning two children.
// Every node is reachable from exactly one parent or rope.
type node struct {
	leaf bool
	text []byte // leaf only

	left, right *node // branch only
	weight      int   // byte length of left

	height int
	span   Position
}

func newLeaf(text []byte) *node {
	n := DefaultPool.get()
	n.leaf = true
	n.text = text
	n.height = 1
	n.span = spanOf(text)
	return n
}

func newBranch(left, right *node) *node {
	n := DefaultPool.get()
	n.left = left
	n.right = right
	n.weight = left.length()
	n.fixup()
	return n
}

// fixup recomputes height and span from the children.
func (n *node) fixup() {
	n.height = 1 + max(n.left.height, n.right.height)
	n.span = combine(n.left.span, n.right.span)
}

// build bisects text until every fragment fits in a leaf.
func build(text string) *node {
	if len(text) <= MaxLeafLen {
		return newLeaf([]byte(text))
	}
	mid := snapToRuneStart(text, len(text)/2)
	return newBranch(build(text[:mid]), build(text[mid:]))
}

// length walks the right spine summing weights.
func (n *node) length() int {
	total := 0
	for !n.leaf {
		total += n.weight
		n = n.right
	}
	return total + len(n.text)
}

// fragmentAt makes a branch boundary fall exactly at index.
// It only replaces a leaf with a two-leaf branch, so ancestor weights and
// spans stay valid.
func fragmentAt(n *node, index int) *node {
	if n.leaf {
		if index <= 0 || index >= len(n.text) {
			return n
		}
		text := n.text
		DefaultPool.put(n)
		return newBranch(newLeaf(text[:index:index]), newLeaf(text[index:]))
	}

	switch {
	case index < n.weight:
		n.left = fragmentAt(n.left, index)
	case index > n.weight:
		n.right = fragmentAt(n.right, index-n.weight)
	}
	n.height = 1 + max(n.left.height, n.right.height)
	return n
}

// splitHelp detaches the subtrees on either side of index.
// index must lie on a node boundary; call fragmentAt first.
func splitHelp(n *node, index int) (*node, *node) {
	if n.leaf {
		switch index {
		case 0:
			return newLeaf(nil), n
		case len(n.text):
			return n, newLeaf(nil)
		}
		panic(fmt.Sprintf("rope: split at %d inside a leaf of length %d", index, len(n.text)))
	}

	switch {
	case index == n.weight:
		left, right := n.left, n.right
		DefaultPool.put(n)
		return left, right

	case index < n.weight:
		ll, lr := splitHelp(n.left, index)
		n.left = lr
		n.weight -= index
		n.fixup()
		return ll, n

	default:
		rl, rr := splitHelp(n.right, index-n.weight)
		n.right = rl
		n.fixup()
		return n, rr
	}
}

// indexOf maps a position inside n's span to a byte offset.
func indexOf(n *node, target Position) int {
	offset := 0
	for !n.leaf {
		ls := n.left.span
		if target.Less(ls) {
			n = n.left
			continue
		}
		if target.Row == ls.Row {
			target.Col -= ls.Col
		}
		target.Row -= ls.Row
		offset += n.weight
		n = n.right
	}

	i := 0
	for rows := target.Row; rows > 0; rows-- {
		j := bytes.IndexByte(n.text[i:], '\n')
		if j < 0 {
			return offset + len(n.text)
		}
		i += j + 1
	}
	return offset + advanceChars(n.text, i, target.Col)
}

// positionOf maps a byte offset to the position reached after consuming it.
func positionOf(n *node, index int) Position {
	var acc Position
	for !n.leaf {
		if index < n.weight {
			n = n.left
			continue
		}
		acc = combine(acc, n.left.span)
		index -= n.weight
		n = n.right
	}
	if index > len(n.text) {
		index = len(n.text)
	}
	return combine(acc, spanOf(n.text[:index]))
}

// destroy releases the subtree rooted at n.
func destroy(n *node) {
	if n == nil {
		return
	}
	if !n.leaf {
		destroy(n.left)
		destroy(n.right)
	}
	DefaultPool.put(n)
}

// appendTo appends the subtree's text to dst.
func (n *node) appendTo(dst []byte) []byte {
	if n.leaf {
		return append(dst, n.text...)
	}
	return n.right.appendTo(n.left.appendTo(dst))
}

// collectLeaves appends the subtree's non-empty leaves in order and
// releases every branch and empty leaf on the way.
func collectLeaves(n *node, dst []*node) []*node {
	if n.leaf {
		if len(n.text) == 0 {
			DefaultPool.put(n)
			return dst
		}
		return append(dst, n)
	}
	dst = collectLeaves(n.left, dst)
	dst = collectLeaves(n.right, dst)
	DefaultPool.put(n)
	return dst
}

// joinBalanced builds a balanced tree over leaves.
func joinBalanced(leaves []*node) *node {
	switch len(leaves) {
	case 0:
		return newLeaf(nil)
	case 1:
		return leaves[0]
	}
	mid := len(leaves) / 2
	return newBranch(joinBalanced(leaves[:mid]), joinBalanced(leaves[mid:]))
}

// validate checks the cached weight and span of every branch.
func (n *node) validate() error {
	if n.leaf {
		if got := spanOf(n.text); got != n.span {
			return fmt.Errorf("leaf %q: span %v, want %v", n.text, n.span, got)
		}
		return nil
	}
	if err := n.left.validate(); err != nil {
		return err
	}
	if err := n.right.validate(); err != nil {
		return err
	}
	if got := n.left.length(); got != n.weight {
		return fmt.Errorf("branch weight %d, left length %d", n.weight, got)
	}
	if got := combine(n.left.span, n.right.span); got != n.span {
		return fmt.Errorf("branch span %v, want %v", n.span, got)
	}
	if got := 1 + max(n.left.height, n.right.height); got != n.height {
		return fmt.Errorf("branch height %d, want %d", n.height, got)
	}
	return nil
}
