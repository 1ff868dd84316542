// Package synclist serializes access to lists and queues shared between
// goroutines.
//
// The containers in this module do no locking of their own. Wrapping one
// here is the supported way to share it; each wrapper holds one mutex for
// its container.
package synclist

import (
	"iter"
	"sync"

	"github.com/zephyrtronium/ods/list"
)

// List is a list synchronized with a mutex.
type List[E any] struct {
	mu sync.Mutex
	l  list.List[E]
}

// New wraps l. The caller must not use l directly afterward.
func New[E any](l list.List[E]) *List[E] {
	return &List[E]{l: l}
}

// Len returns the number of elements in the list.
func (m *List[E]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.l.Len()
}

// Get returns the element at index i.
func (m *List[E]) Get(i int) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.l.Get(i)
}

// Set replaces the element at index i and returns the previous one.
func (m *List[E]) Set(i int, x E) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.l.Set(i, x)
}

// Add inserts x at index i.
func (m *List[E]) Add(i int, x E) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.l.Add(i, x)
}

// Remove deletes and returns the element at index i.
func (m *List[E]) Remove(i int) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.l.Remove(i)
}

// Do calls f with the underlying list while holding the lock, so that
// several operations happen atomically, e.g. choosing an index from Len and
// then removing it. f must not retain the list.
func (m *List[E]) Do(f func(l list.List[E])) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f(m.l)
}

// All iterates over a snapshot of the list's elements taken when iteration
// begins. Modifications during iteration are not observed.
func (m *List[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		m.mu.Lock()
		s := list.Elements(m.l)
		m.mu.Unlock()
		for i, x := range s {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Queue is a queue synchronized with a mutex.
type Queue[E any] struct {
	mu sync.Mutex
	q  list.Queue[E]
}

// NewQueue wraps q. The caller must not use q directly afterward.
func NewQueue[E any](q list.Queue[E]) *Queue[E] {
	return &Queue[E]{q: q}
}

// Len returns the number of elements in the queue.
func (m *Queue[E]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.q.Len()
}

// Add inserts x into the queue.
func (m *Queue[E]) Add(x E) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.q.Add(x)
}

// Remove removes an element from the queue.
func (m *Queue[E]) Remove() (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.q.Remove()
}

// Do calls f with the underlying queue while holding the lock.
func (m *Queue[E]) Do(f func(q list.Queue[E])) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f(m.q)
}
