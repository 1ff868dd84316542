// Package dualdeque implements a double-ended list from two array stacks
// placed back to back.
//
// The front stack holds the first elements of the list in reverse order and
// the back stack holds the rest in order, so both ends of the list are at the
// fast end of a stack. Ignoring resizing and rebalancing, Add and Remove at
// index i take time proportional to 1+min(i, Len()-i). Starting from an empty
// deque, any sequence of m Add and Remove operations spends O(m) time
// resizing and rebalancing.
package dualdeque

import (
	"github.com/zephyrtronium/ods/array"
	"github.com/zephyrtronium/ods/arraystack"
	"github.com/zephyrtronium/ods/list"
)

// Deque is a list built from two array stacks.
// The zero value is an empty deque ready to use.
type Deque[E any] struct {
	front arraystack.Stack[E]
	back  arraystack.Stack[E]
	// moved counts elements moved by balance.
	moved int
}

// New returns an empty deque.
func New[E any]() *Deque[E] {
	return new(Deque[E])
}

// Len returns the number of elements in the deque.
func (d *Deque[E]) Len() int {
	return d.front.Len() + d.back.Len()
}

// Sizes returns the number of elements held by each of the two stacks.
func (d *Deque[E]) Sizes() (front, back int) {
	return d.front.Len(), d.back.Len()
}

// Caps returns the capacity of each of the two stacks.
func (d *Deque[E]) Caps() (front, back int) {
	return d.front.Cap(), d.back.Cap()
}

// Copies returns the total number of elements moved by resizing either stack
// and by rebalancing.
func (d *Deque[E]) Copies() int {
	return d.front.Copies() + d.back.Copies() + d.moved
}

// Get returns the element at index i.
func (d *Deque[E]) Get(i int) (E, error) {
	if err := list.Check(i, d.Len()); err != nil {
		var zero E
		return zero, err
	}
	if nf := d.front.Len(); i < nf {
		return d.front.Get(nf - i - 1)
	}
	return d.back.Get(i - d.front.Len())
}

// Set replaces the element at index i and returns the previous one.
func (d *Deque[E]) Set(i int, x E) (E, error) {
	if err := list.Check(i, d.Len()); err != nil {
		var zero E
		return zero, err
	}
	if nf := d.front.Len(); i < nf {
		return d.front.Set(nf-i-1, x)
	}
	return d.back.Set(i-d.front.Len(), x)
}

// Add inserts x at index i.
func (d *Deque[E]) Add(i int, x E) error {
	if err := list.CheckAdd(i, d.Len()); err != nil {
		return err
	}
	var err error
	if nf := d.front.Len(); i < nf {
		err = d.front.Add(nf-i, x)
	} else {
		err = d.back.Add(i-nf, x)
	}
	if err != nil {
		// Unreachable after the check above.
		return err
	}
	d.balance()
	return nil
}

// Remove deletes and returns the element at index i.
func (d *Deque[E]) Remove(i int) (E, error) {
	if err := list.Check(i, d.Len()); err != nil {
		var zero E
		return zero, err
	}
	var x E
	var err error
	if nf := d.front.Len(); i < nf {
		x, err = d.front.Remove(nf - i - 1)
	} else {
		x, err = d.back.Remove(i - nf)
	}
	if err != nil {
		return x, err
	}
	d.balance()
	return x, nil
}

// Clear removes all elements and releases both stacks' storage.
func (d *Deque[E]) Clear() {
	d.front.Clear()
	d.back.Clear()
}

// balance redistributes the elements evenly between the stacks when either
// holds more than three times as many as the other.
func (d *Deque[E]) balance() {
	nf, nb := d.front.Len(), d.back.Len()
	if 3*nf >= nb && 3*nb >= nf {
		return
	}
	n := nf + nb
	if n < 2 {
		// One element can only ever be split one way.
		return
	}
	nf = n / 2
	nb = n - nf
	// Read through Get while both stacks still hold their old contents.
	af := array.New[E](max(2*nf, 1))
	for i := range nf {
		af.Put(nf-i-1, d.mustGet(i))
	}
	ab := array.New[E](max(2*nb, 1))
	for i := range nb {
		ab.Put(i, d.mustGet(nf+i))
	}
	d.front.Adopt(af, nf)
	d.back.Adopt(ab, nb)
	d.moved += n
}

// mustGet returns the element at index i, which must be in range.
func (d *Deque[E]) mustGet(i int) E {
	x, err := d.Get(i)
	if err != nil {
		panic(err)
	}
	return x
}
