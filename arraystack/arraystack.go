// Package arraystack implements lists backed by a single array, fast at the
// end and slow at the front.
//
// Ignoring resizing, Get and Set take constant time, and Add and Remove at
// index i take time proportional to Len()-i. Starting from an empty stack,
// any sequence of m Add and Remove operations spends O(m) time resizing.
package arraystack

import (
	"github.com/zephyrtronium/ods/array"
	"github.com/zephyrtronium/ods/list"
)

// Stack is an array-backed list which shifts elements one at a time.
// The zero value is an empty stack ready to use.
type Stack[E any] struct {
	a *array.Bounded[E]
	n int
	// copies is the number of elements moved by resizing.
	copies int
}

// New returns an empty stack.
func New[E any]() *Stack[E] {
	return &Stack[E]{a: array.New[E](0)}
}

// Len returns the number of elements in the stack.
func (s *Stack[E]) Len() int {
	return s.n
}

// Cap returns the length of the backing array.
func (s *Stack[E]) Cap() int {
	return s.a.Len()
}

// Copies returns the total number of elements moved while resizing.
func (s *Stack[E]) Copies() int {
	return s.copies
}

// Get returns the element at index i.
func (s *Stack[E]) Get(i int) (E, error) {
	if err := list.Check(i, s.n); err != nil {
		var zero E
		return zero, err
	}
	return s.a.At(i), nil
}

// Set replaces the element at index i and returns the previous one.
func (s *Stack[E]) Set(i int, x E) (E, error) {
	if err := list.Check(i, s.n); err != nil {
		var zero E
		return zero, err
	}
	y := s.a.At(i)
	s.a.Put(i, x)
	return y, nil
}

// Add inserts x at index i, shifting elements at i and later up by one.
func (s *Stack[E]) Add(i int, x E) error {
	if err := list.CheckAdd(i, s.n); err != nil {
		return err
	}
	if s.n+1 > s.Cap() {
		s.resize()
	}
	for k := s.n; k > i; k-- {
		s.a.Put(k, s.a.At(k-1))
	}
	s.a.Put(i, x)
	s.n++
	return nil
}

// Remove deletes and returns the element at index i, shifting later elements
// down by one.
func (s *Stack[E]) Remove(i int) (E, error) {
	if err := list.Check(i, s.n); err != nil {
		var zero E
		return zero, err
	}
	x := s.a.At(i)
	for k := i; k < s.n-1; k++ {
		s.a.Put(k, s.a.At(k+1))
	}
	s.n--
	s.a.Clear(s.n, 1)
	if s.Cap() >= 3*s.n {
		s.resize()
	}
	return x, nil
}

// Push adds x to the top of the stack.
func (s *Stack[E]) Push(x E) {
	// Cannot fail.
	s.Add(s.n, x)
}

// Pop removes and returns the top of the stack.
// If the stack is empty, the error is [list.ErrEmpty].
func (s *Stack[E]) Pop() (E, error) {
	if s.n == 0 {
		var zero E
		return zero, list.ErrEmpty
	}
	return s.Remove(s.n - 1)
}

// Adopt takes ownership of b as the backing array, holding its first n
// elements. The previous backing array is discarded and b becomes empty.
// Panics if n is outside [0, b.Len()].
func (s *Stack[E]) Adopt(b *array.Bounded[E], n int) {
	if n < 0 || n > b.Len() {
		panic("arraystack: adopted size out of range")
	}
	if s.a == nil {
		s.a = new(array.Bounded[E])
	}
	s.a.Replace(b)
	s.n = n
}

// Clear removes all elements and releases the backing array.
func (s *Stack[E]) Clear() {
	if s.a != nil {
		s.a.Release()
	}
	s.n = 0
}

// resize moves the elements into a new array of length max(2n, 1).
func (s *Stack[E]) resize() {
	c := max(2*s.n, 1)
	if c == s.Cap() {
		return
	}
	b := array.New[E](c)
	for k := 0; k < s.n; k++ {
		b.Put(k, s.a.At(k))
	}
	s.copies += s.n
	if s.a == nil {
		s.a = new(array.Bounded[E])
	}
	s.a.Replace(b)
}
