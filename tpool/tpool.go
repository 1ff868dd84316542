// Package tpool provides a generic, type-safe sync.Pool wrapper.
package tpool

import "sync"

// Pool is a type-safe pool of reusable values backed by a [sync.Pool].
// The zero value is an empty pool whose Get returns the zero value of T
// when no value is available.
type Pool[T any] struct {
	p sync.Pool
	// New optionally creates a value when the pool is empty.
	// It must not be modified after the first call to Get.
	New func() T
	// Reset optionally clears a value as it is returned to the pool.
	// It must not be modified after the first call to Put.
	Reset func(T)
}

// Get pulls a value from the pool.
// It mirrors the semantics of [*sync.Pool.Get]; in particular, it may return
// a new value even after Put.
func (p *Pool[T]) Get() T {
	if r, ok := p.p.Get().(T); ok {
		return r
	}
	if p.New != nil {
		return p.New()
	}
	var zero T
	return zero
}

// Put resets e and returns it to the pool.
func (p *Pool[T]) Put(e T) {
	if p.Reset != nil {
		p.Reset(e)
	}
	p.p.Put(e)
}
