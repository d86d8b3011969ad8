package rope

import (
	"sync"
	"sync/atomic"
)

// NodePool recycles rope nodes released by Destroy and by the spine nodes
// that Split discards.
type NodePool struct {
	pool sync.Pool

	gets atomic.Int64
	puts atomic.Int64
}

// DefaultPool is the pool used by all rope operations.
var DefaultPool = NewNodePool()

// NewNodePool creates a new node pool.
func NewNodePool() *NodePool {
	return &NodePool{
		pool: sync.Pool{
			New: func() interface{} {
				return &node{}
			},
		},
	}
}

// get retrieves a zeroed node.
func (p *NodePool) get() *node {
	p.gets.Add(1)
	return p.pool.Get().(*node)
}

// put clears n and returns it to the pool.
// The node must not be reachable from any live rope.
func (p *NodePool) put(n *node) {
	if n == nil {
		return
	}
	*n = node{}
	p.puts.Add(1)
	p.pool.Put(n)
}

// PoolStats reports pool traffic.
type PoolStats struct {
	Gets int64
	Puts int64
}

// Stats returns the number of nodes handed out and returned so far.
func (p *NodePool) Stats() PoolStats {
	return PoolStats{Gets: p.gets.Load(), Puts: p.puts.Load()}
}
