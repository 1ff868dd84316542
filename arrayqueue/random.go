package arrayqueue

import (
	"math/rand/v2"

	"github.com/zephyrtronium/ods/array"
	"github.com/zephyrtronium/ods/list"
)

// Random is a queue whose Remove returns an element chosen uniformly at
// random. Add and Remove take amortized constant time.
// The zero value is an empty queue using the global random source.
type Random[E any] struct {
	a      *array.Bounded[E]
	n      int
	copies int
	rng    *rand.Rand
}

// NewRandom returns an empty random queue drawing from rng.
// If rng is nil, the queue uses the global random source.
func NewRandom[E any](rng *rand.Rand) *Random[E] {
	return &Random[E]{a: array.New[E](0), rng: rng}
}

// Len returns the number of elements in the queue.
func (q *Random[E]) Len() int {
	return q.n
}

// Cap returns the length of the backing array.
func (q *Random[E]) Cap() int {
	return q.a.Len()
}

// Copies returns the total number of elements moved while resizing.
func (q *Random[E]) Copies() int {
	return q.copies
}

// Get returns the element at position i.
// Positions are in no particular order and change with each Remove.
func (q *Random[E]) Get(i int) (E, error) {
	if err := list.Check(i, q.n); err != nil {
		var zero E
		return zero, err
	}
	return q.a.At(i), nil
}

// Set replaces the element at position i and returns the previous one.
func (q *Random[E]) Set(i int, x E) (E, error) {
	if err := list.Check(i, q.n); err != nil {
		var zero E
		return zero, err
	}
	y := q.a.At(i)
	q.a.Put(i, x)
	return y, nil
}

// Add inserts x into the queue.
func (q *Random[E]) Add(x E) {
	if q.n+1 > q.Cap() {
		q.resize()
	}
	q.a.Put(q.n, x)
	q.n++
}

// Remove removes and returns a uniformly random element.
// If the queue is empty, the error is [list.ErrEmpty].
func (q *Random[E]) Remove() (E, error) {
	if q.n == 0 {
		var zero E
		return zero, list.ErrEmpty
	}
	k := q.intN(q.n)
	x := q.a.At(k)
	// Fill the hole with the last element so nothing needs to shift.
	q.n--
	q.a.Put(k, q.a.At(q.n))
	q.a.Clear(q.n, 1)
	if q.Cap() >= 3*q.n {
		q.resize()
	}
	return x, nil
}

// Clear removes all elements and releases the backing array.
func (q *Random[E]) Clear() {
	if q.a != nil {
		q.a.Release()
	}
	q.n = 0
}

func (q *Random[E]) intN(n int) int {
	if q.rng == nil {
		return rand.IntN(n)
	}
	return q.rng.IntN(n)
}

func (q *Random[E]) resize() {
	c := max(2*q.n, 1)
	if c == q.Cap() {
		return
	}
	b := array.New[E](c)
	q.copies += array.Copy(b, 0, q.a, 0, q.n)
	if q.a == nil {
		q.a = new(array.Bounded[E])
	}
	q.a.Replace(b)
}
