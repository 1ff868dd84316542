package arraystack

import (
	"github.com/zephyrtronium/ods/array"
	"github.com/zephyrtronium/ods/list"
)

// Fast is an array-backed list with the same contract as [Stack] which
// shifts and resizes using block copies instead of moving elements one at a
// time.
// The zero value is an empty stack ready to use.
type Fast[E any] struct {
	a      *array.Bounded[E]
	n      int
	copies int
}

// NewFast returns an empty stack.
func NewFast[E any]() *Fast[E] {
	return &Fast[E]{a: array.New[E](0)}
}

// Len returns the number of elements in the stack.
func (s *Fast[E]) Len() int {
	return s.n
}

// Cap returns the length of the backing array.
func (s *Fast[E]) Cap() int {
	return s.a.Len()
}

// Copies returns the total number of elements moved while resizing.
func (s *Fast[E]) Copies() int {
	return s.copies
}

// Get returns the element at index i.
func (s *Fast[E]) Get(i int) (E, error) {
	if err := list.Check(i, s.n); err != nil {
		var zero E
		return zero, err
	}
	return s.a.At(i), nil
}

// Set replaces the element at index i and returns the previous one.
func (s *Fast[E]) Set(i int, x E) (E, error) {
	if err := list.Check(i, s.n); err != nil {
		var zero E
		return zero, err
	}
	y := s.a.At(i)
	s.a.Put(i, x)
	return y, nil
}

// Add inserts x at index i, shifting elements at i and later up by one.
func (s *Fast[E]) Add(i int, x E) error {
	if err := list.CheckAdd(i, s.n); err != nil {
		return err
	}
	if s.n+1 > s.Cap() {
		s.resize()
	}
	array.Copy(s.a, i+1, s.a, i, s.n-i)
	s.a.Put(i, x)
	s.n++
	return nil
}

// Remove deletes and returns the element at index i, shifting later elements
// down by one.
func (s *Fast[E]) Remove(i int) (E, error) {
	if err := list.Check(i, s.n); err != nil {
		var zero E
		return zero, err
	}
	x := s.a.At(i)
	array.Copy(s.a, i, s.a, i+1, s.n-i-1)
	s.n--
	s.a.Clear(s.n, 1)
	if s.Cap() >= 3*s.n {
		s.resize()
	}
	return x, nil
}

// Push adds x to the top of the stack.
func (s *Fast[E]) Push(x E) {
	s.Add(s.n, x)
}

// Pop removes and returns the top of the stack.
// If the stack is empty, the error is [list.ErrEmpty].
func (s *Fast[E]) Pop() (E, error) {
	if s.n == 0 {
		var zero E
		return zero, list.ErrEmpty
	}
	return s.Remove(s.n - 1)
}

// Clear removes all elements and releases the backing array.
func (s *Fast[E]) Clear() {
	if s.a != nil {
		s.a.Release()
	}
	s.n = 0
}

func (s *Fast[E]) resize() {
	c := max(2*s.n, 1)
	if c == s.Cap() {
		return
	}
	b := array.New[E](c)
	s.copies += array.Copy(b, 0, s.a, 0, s.n)
	if s.a == nil {
		s.a = new(array.Bounded[E])
	}
	s.a.Replace(b)
}
