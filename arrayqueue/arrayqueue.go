// Package arrayqueue implements queues backed by a single array.
package arrayqueue

import (
	"github.com/zephyrtronium/ods/array"
	"github.com/zephyrtronium/ods/list"
)

// Queue is a FIFO queue stored in a circular array.
// Element i of the queue lives at a[(j+i) % a.Len()].
// The zero value is an empty queue ready to use.
type Queue[E any] struct {
	a *array.Bounded[E]
	// j is the position of the head of the queue.
	j      int
	n      int
	copies int
}

// New returns an empty queue.
func New[E any]() *Queue[E] {
	return &Queue[E]{a: array.New[E](0)}
}

// Len returns the number of elements in the queue.
func (q *Queue[E]) Len() int {
	return q.n
}

// Cap returns the length of the backing array.
func (q *Queue[E]) Cap() int {
	return q.a.Len()
}

// Copies returns the total number of elements moved while resizing.
func (q *Queue[E]) Copies() int {
	return q.copies
}

// Get returns the element at position i from the head of the queue.
func (q *Queue[E]) Get(i int) (E, error) {
	if err := list.Check(i, q.n); err != nil {
		var zero E
		return zero, err
	}
	return q.a.At(q.pos(i)), nil
}

// Set replaces the element at position i from the head of the queue and
// returns the previous one.
func (q *Queue[E]) Set(i int, x E) (E, error) {
	if err := list.Check(i, q.n); err != nil {
		var zero E
		return zero, err
	}
	k := q.pos(i)
	y := q.a.At(k)
	q.a.Put(k, x)
	return y, nil
}

// Add appends x to the tail of the queue.
func (q *Queue[E]) Add(x E) {
	if q.n+1 > q.Cap() {
		q.resize()
	}
	q.a.Put(q.pos(q.n), x)
	q.n++
}

// Remove removes and returns the element at the head of the queue.
// If the queue is empty, the error is [list.ErrEmpty].
func (q *Queue[E]) Remove() (E, error) {
	if q.n == 0 {
		var zero E
		return zero, list.ErrEmpty
	}
	x := q.a.At(q.j)
	q.a.Clear(q.j, 1)
	q.j = (q.j + 1) % q.Cap()
	q.n--
	if q.Cap() >= 3*q.n {
		q.resize()
	}
	return x, nil
}

// Clear removes all elements and releases the backing array.
func (q *Queue[E]) Clear() {
	if q.a != nil {
		q.a.Release()
	}
	q.j, q.n = 0, 0
}

// pos maps a logical position to an index into the backing array.
// The backing array must not be empty.
func (q *Queue[E]) pos(i int) int {
	return (q.j + i) % q.a.Len()
}

// resize moves the elements, head first, into a new array of length
// max(2n, 1).
func (q *Queue[E]) resize() {
	c := max(2*q.n, 1)
	if c == q.Cap() {
		return
	}
	b := array.New[E](c)
	if q.n > 0 {
		// At most two block copies: from the head to the end of the array,
		// then the wrapped part from the start.
		first := min(q.n, q.Cap()-q.j)
		array.Copy(b, 0, q.a, q.j, first)
		array.Copy(b, first, q.a, 0, q.n-first)
	}
	q.copies += q.n
	if q.a == nil {
		q.a = new(array.Bounded[E])
	}
	q.a.Replace(b)
	q.j = 0
}
