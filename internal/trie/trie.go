package trie

// Node is a position in the trie reached at a key boundary.
type Node[V any] struct {
	children map[byte]*Node[V]
	value    V
	hasValue bool
}

// Value returns the value bound at this node, if any.
func (n *Node[V]) Value() (V, bool) {
	return n.value, n.hasValue
}

// HasChildren reports whether any longer sequence passes through this node.
func (n *Node[V]) HasChildren() bool {
	return len(n.children) > 0
}

func (n *Node[V]) child(b byte) *Node[V] {
	if n.children == nil {
		return nil
	}
	return n.children[b]
}

func (n *Node[V]) ensureChild(b byte) *Node[V] {
	if n.children == nil {
		n.children = make(map[byte]*Node[V], 1)
	}
	c, ok := n.children[b]
	if !ok {
		c = &Node[V]{}
		n.children[b] = c
	}
	return c
}

// Match is the result of a longest-prefix lookup.
type Match[V any] struct {
	// Value is the value bound to the matched prefix.
	Value V

	// Eaten is the number of keys the matched prefix consumed.
	Eaten int
}

// Trie maps sequences of K to values of V.
// A Trie is not safe for concurrent mutation; concurrent reads are fine.
type Trie[K any, V any] struct {
	enc   Encoding[K]
	root  *Node[V]
	count int
}

// New creates an empty trie using the given key encoding.
func New[K any, V any](enc Encoding[K]) *Trie[K, V] {
	return &Trie[K, V]{
		enc:  enc,
		root: &Node[V]{},
	}
}

// Len returns the number of sequences currently bound to a value.
func (t *Trie[K, V]) Len() int {
	return t.count
}

// step walks the encoded bytes of k starting at n.
// Returns nil if the path does not exist.
func (t *Trie[K, V]) step(n *Node[V], k K) *Node[V] {
	var buf [16]byte
	for _, b := range t.enc.Append(buf[:0], k) {
		n = n.child(b)
		if n == nil {
			return nil
		}
	}
	return n
}

// Insert binds value to seq, replacing any previous binding.
// An empty seq is ignored.
func (t *Trie[K, V]) Insert(seq []K, value V) {
	if len(seq) == 0 {
		return
	}

	var buf [16]byte
	n := t.root
	for _, k := range seq {
		for _, b := range t.enc.Append(buf[:0], k) {
			n = n.ensureChild(b)
		}
	}

	if !n.hasValue {
		t.count++
	}
	n.value = value
	n.hasValue = true
}

// Walk returns the node reached by following seq exactly.
// The root node is returned for an empty seq.
func (t *Trie[K, V]) Walk(seq []K) (*Node[V], bool) {
	n := t.root
	for _, k := range seq {
		n = t.step(n, k)
		if n == nil {
			return nil, false
		}
	}
	return n, true
}

// Lookup returns the value bound to exactly seq.
func (t *Trie[K, V]) Lookup(seq []K) (V, bool) {
	var zero V
	if len(seq) == 0 {
		return zero, false
	}
	n, ok := t.Walk(seq)
	if !ok {
		return zero, false
	}
	return n.Value()
}

// LookupLongest returns the value bound to the longest prefix of seq that
// carries a value, and how many keys of seq that prefix spans.
func (t *Trie[K, V]) LookupLongest(seq []K) (Match[V], bool) {
	var (
		best  Match[V]
		found bool
	)

	n := t.root
	for i, k := range seq {
		n = t.step(n, k)
		if n == nil {
			break
		}
		if n.hasValue {
			best = Match[V]{Value: n.value, Eaten: i + 1}
			found = true
		}
	}
	return best, found
}

// Remove clears the value bound to seq.
// Returns false if seq was not bound. Nodes are never pruned.
func (t *Trie[K, V]) Remove(seq []K) bool {
	if len(seq) == 0 {
		return false
	}
	n, ok := t.Walk(seq)
	if !ok || !n.hasValue {
		return false
	}

	var zero V
	n.value = zero
	n.hasValue = false
	t.count--
	return true
}

// Each calls fn for every bound sequence in byte order of the encoding.
// The slice passed to fn is reused between calls.
func (t *Trie[K, V]) Each(decode func([]byte) (K, bool), fn func(seq []K, value V)) {
	size := t.enc.Size()
	var (
		path []byte
		seq  []K
	)

	var visit func(n *Node[V])
	visit = func(n *Node[V]) {
		if n.hasValue && len(path)%size == 0 {
			seq = seq[:0]
			valid := true
			for off := 0; off < len(path) && valid; off += size {
				k, ok := decode(path[off : off+size])
				valid = ok
				seq = append(seq, k)
			}
			if valid {
				fn(seq, n.value)
			}
		}
		for b := 0; b < 256; b++ {
			c := n.child(byte(b))
			if c == nil {
				continue
			}
			path = append(path, byte(b))
			visit(c)
			path = path[:len(path)-1]
		}
	}
	visit(t.root)
}
