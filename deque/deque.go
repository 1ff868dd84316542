// Package deque provides an array-backed double-ended list.
package deque

import (
	"github.com/zephyrtronium/ods/array"
	"github.com/zephyrtronium/ods/list"
)

// Deque is a list stored in a circular array. Insertions and removals shift
// whichever side of the index is shorter, so Add and Remove at index i take
// time proportional to 1+min(i, Len()-i), ignoring resizing.
// The zero value is an empty deque ready to use.
type Deque[Elem any] struct {
	a *array.Bounded[Elem]
	// j is the position in a of the element at index 0.
	j      int
	n      int
	copies int
}

// New returns an empty deque.
func New[Elem any]() *Deque[Elem] {
	return &Deque[Elem]{a: array.New[Elem](0)}
}

// Len returns the number of elements in the deque.
func (d *Deque[Elem]) Len() int {
	return d.n
}

// Cap returns the length of the backing array.
func (d *Deque[Elem]) Cap() int {
	return d.a.Len()
}

// Copies returns the total number of elements moved while resizing.
func (d *Deque[Elem]) Copies() int {
	return d.copies
}

// Get returns the element at index i.
func (d *Deque[Elem]) Get(i int) (Elem, error) {
	if err := list.Check(i, d.n); err != nil {
		var zero Elem
		return zero, err
	}
	return d.a.At(d.pos(i)), nil
}

// Set replaces the element at index i and returns the previous one.
func (d *Deque[Elem]) Set(i int, x Elem) (Elem, error) {
	if err := list.Check(i, d.n); err != nil {
		var zero Elem
		return zero, err
	}
	k := d.pos(i)
	y := d.a.At(k)
	d.a.Put(k, x)
	return y, nil
}

// Add inserts x at index i.
func (d *Deque[Elem]) Add(i int, x Elem) error {
	if err := list.CheckAdd(i, d.n); err != nil {
		return err
	}
	if d.n+1 > d.Cap() {
		d.resize()
	}
	if i < d.n/2 {
		// Move the head back one slot, then slide [0, i) down into it.
		if d.j == 0 {
			d.j = d.Cap() - 1
		} else {
			d.j--
		}
		for k := 0; k < i; k++ {
			d.a.Put(d.pos(k), d.a.At(d.pos(k+1)))
		}
	} else {
		for k := d.n; k > i; k-- {
			d.a.Put(d.pos(k), d.a.At(d.pos(k-1)))
		}
	}
	d.a.Put(d.pos(i), x)
	d.n++
	return nil
}

// Remove deletes and returns the element at index i.
func (d *Deque[Elem]) Remove(i int) (Elem, error) {
	if err := list.Check(i, d.n); err != nil {
		var zero Elem
		return zero, err
	}
	x := d.a.At(d.pos(i))
	if i < d.n/2 {
		// Slide [0, i) up by one, then advance the head past the hole.
		for k := i; k > 0; k-- {
			d.a.Put(d.pos(k), d.a.At(d.pos(k-1)))
		}
		d.a.Clear(d.j, 1)
		d.j = (d.j + 1) % d.Cap()
	} else {
		for k := i; k < d.n-1; k++ {
			d.a.Put(d.pos(k), d.a.At(d.pos(k+1)))
		}
		d.a.Clear(d.pos(d.n-1), 1)
	}
	d.n--
	if d.Cap() >= 3*d.n {
		d.resize()
	}
	return x, nil
}

// Append adds elements to the end of the deque.
func (d *Deque[Elem]) Append(ee ...Elem) {
	for _, e := range ee {
		d.Add(d.n, e)
	}
}

// Prepend adds elements to the front of the deque, keeping their order.
func (d *Deque[Elem]) Prepend(ee ...Elem) {
	for i := len(ee) - 1; i >= 0; i-- {
		d.Add(0, ee[i])
	}
}

// PopFront removes and returns the first element.
// If the deque is empty, the error is [list.ErrEmpty].
func (d *Deque[Elem]) PopFront() (Elem, error) {
	if d.n == 0 {
		var zero Elem
		return zero, list.ErrEmpty
	}
	return d.Remove(0)
}

// PopBack removes and returns the last element.
// If the deque is empty, the error is [list.ErrEmpty].
func (d *Deque[Elem]) PopBack() (Elem, error) {
	if d.n == 0 {
		var zero Elem
		return zero, list.ErrEmpty
	}
	return d.Remove(d.n - 1)
}

// Clear removes all elements and releases the backing array.
func (d *Deque[Elem]) Clear() {
	if d.a != nil {
		d.a.Release()
	}
	d.j, d.n = 0, 0
}

func (d *Deque[Elem]) pos(i int) int {
	return (d.j + i) % d.a.Len()
}

// resize moves the elements into a new array of length max(2n, 1) with the
// head at position 0.
func (d *Deque[Elem]) resize() {
	c := max(2*d.n, 1)
	if c == d.Cap() {
		return
	}
	b := array.New[Elem](c)
	if d.n > 0 {
		first := min(d.n, d.Cap()-d.j)
		array.Copy(b, 0, d.a, d.j, first)
		array.Copy(b, first, d.a, 0, d.n-first)
	}
	d.copies += d.n
	if d.a == nil {
		d.a = new(array.Bounded[Elem])
	}
	d.a.Replace(b)
	d.j = 0
}
