// Package syncx provides small concurrency helpers
package syncx

import "sync"

// Guard wraps a value with a read-write mutex.
type Guard[T any] struct {
	mu  sync.RWMutex
	val T
}

func NewGuard[T any](initial T) *Guard[T] {
	return &Guard[T]{val: initial}
}

// Get returns a copy of the guarded value.
func (g *Guard[T]) Get() T {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.val
}

// Set replaces the guarded value.
func (g *Guard[T]) Set(v T) {
	g.mu.Lock()
	g.val = v
	g.mu.Unlock()
}

// Update applies fn to the value under the write lock.
func (g *Guard[T]) Update(fn func(T) T) {
	g.mu.Lock()
	g.val = fn(g.val)
	g.mu.Unlock()
}
