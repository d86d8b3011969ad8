// Package queue provides a mutex-protected, unbounded FIFO.
//
// The FIFO is the only structure shared between goroutines in the editor:
// the input goroutine pushes decoded keys, the poll loop pops them without
// blocking. It is also reused single-threaded as the outgoing action queue
// of the chord resolver, where the lock is uncontended.
package queue

import (
	"sync"
	"sync/atomic"
)

// FIFO is a first-in first-out queue bounded only by memory.
// The zero value is ready to use.
type FIFO[T any] struct {
	mu    sync.Mutex
	items []T
	head  int

	// ready receives a token when an item is pushed onto an empty queue.
	readyOnce sync.Once
	ready     chan struct{}

	pushed atomic.Uint64
	popped atomic.Uint64
}

// New creates an empty FIFO.
func New[T any]() *FIFO[T] {
	return &FIFO[T]{}
}

func (q *FIFO[T]) readyChan() chan struct{} {
	q.readyOnce.Do(func() {
		q.ready = make(chan struct{}, 1)
	})
	return q.ready
}

// Push appends v to the tail of the queue.
func (q *FIFO[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.pushed.Add(1)

	select {
	case q.readyChan() <- struct{}{}:
	default:
	}
}

// TryPop removes and returns the head of the queue.
// It never blocks; ok is false when the queue is empty.
func (q *FIFO[T]) TryPop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.items) {
		return v, false
	}

	v = q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head++

	// Compact once the consumed prefix dominates the backing array.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 32 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	q.popped.Add(1)
	return v, true
}

// Last returns the most recently pushed item still in the queue.
func (q *FIFO[T]) Last() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.items) {
		return v, false
	}
	return q.items[len(q.items)-1], true
}

// Len returns the number of queued items.
func (q *FIFO[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Drain removes and returns every queued item in order.
func (q *FIFO[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items) - q.head
	if n == 0 {
		return nil
	}
	out := make([]T, n)
	copy(out, q.items[q.head:])
	q.popped.Add(uint64(n))

	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
	return out
}

// Clear discards every queued item.
func (q *FIFO[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
}

// Ready returns a channel that receives a token after a push.
// A token may be stale; callers must still check TryPop.
func (q *FIFO[T]) Ready() <-chan struct{} {
	return q.readyChan()
}

// Stats returns the total number of pushes and pops so far.
func (q *FIFO[T]) Stats() (pushed, popped uint64) {
	return q.pushed.Load(), q.popped.Load()
}
