// Package mailbox provides a single-slot buffer where the latest value
// always wins. It is NOT a queue: bursts of triggers collapse into at
// most one pending entry, which is exactly what a filesystem watcher
// feeding a whole-tree pipeline needs.
package mailbox

import (
	"context"
	"sync"
)

type Mailbox[T any] struct {
	mu sync.Mutex
	ch chan T
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{ch: make(chan T, 1)}
}

// Put stores a value, replacing any pending one. It never blocks.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.ch:
	default:
	}
	m.ch <- v
}

// Take blocks until a value is available or the context is cancelled.
// The second return is false on cancellation.
func (m *Mailbox[T]) Take(ctx context.Context) (T, bool) {
	select {
	case v := <-m.ch:
		return v, true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}
