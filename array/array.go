// Package array provides a fixed-length, bounds-checked array which owns its
// storage exclusively.
package array

import "github.com/zephyrtronium/ods/list"

// Bounded is a fixed-length array of elements.
//
// A Bounded must only be handled by pointer. Copying the struct would alias
// its storage between two owners; use [Bounded.Replace] to transfer storage.
// A nil *Bounded behaves as an empty array for reads.
type Bounded[E any] struct {
	el []E
}

// New allocates an array of exactly length zero-valued elements.
// It panics if length is negative.
func New[E any](length int) *Bounded[E] {
	if length < 0 {
		panic("array: negative length")
	}
	return &Bounded[E]{el: make([]E, length)}
}

// Len returns the number of slots in the array.
func (a *Bounded[E]) Len() int {
	if a == nil {
		return 0
	}
	return len(a.el)
}

// Get returns the element at index i.
func (a *Bounded[E]) Get(i int) (E, error) {
	if err := list.Check(i, a.Len()); err != nil {
		var zero E
		return zero, err
	}
	return a.el[i], nil
}

// Set stores x at index i and returns the element previously there.
func (a *Bounded[E]) Set(i int, x E) (E, error) {
	if err := list.Check(i, a.Len()); err != nil {
		var zero E
		return zero, err
	}
	y := a.el[i]
	a.el[i] = x
	return y, nil
}

// At returns the element at index i.
// It is intended for callers which have already validated i;
// it panics with an *[list.IndexError] if i is out of range.
func (a *Bounded[E]) At(i int) E {
	a.mustCheck(i)
	return a.el[i]
}

// Put stores x at index i.
// Like [Bounded.At], it panics with an *[list.IndexError] if i is out of
// range.
func (a *Bounded[E]) Put(i int, x E) {
	a.mustCheck(i)
	a.el[i] = x
}

func (a *Bounded[E]) mustCheck(i int) {
	if err := list.Check(i, a.Len()); err != nil {
		panic(err)
	}
}

// Replace transfers the storage of b to a, discarding a's previous storage.
// Afterward b is empty. The elements are not copied.
func (a *Bounded[E]) Replace(b *Bounded[E]) {
	if a == b {
		return
	}
	a.el = b.el
	b.el = nil
}

// Release discards the array's storage, leaving it empty.
func (a *Bounded[E]) Release() {
	a.el = nil
}

// Copy copies n elements from src starting at si to dst starting at di.
// The ranges may overlap, including when dst and src are the same array.
// If either range extends past the end of its array, Copy panics with an
// *[list.IndexError] before copying anything. Copy returns n.
func Copy[E any](dst *Bounded[E], di int, src *Bounded[E], si, n int) int {
	if n <= 0 {
		return 0
	}
	src.mustCheck(si)
	src.mustCheck(si + n - 1)
	dst.mustCheck(di)
	dst.mustCheck(di + n - 1)
	return copy(dst.el[di:di+n], src.el[si:si+n])
}

// Clear zeroes n elements starting at index i, so the array no longer holds
// references to them.
func (a *Bounded[E]) Clear(i, n int) {
	if n <= 0 {
		return
	}
	a.mustCheck(i)
	a.mustCheck(i + n - 1)
	clear(a.el[i : i+n])
}
