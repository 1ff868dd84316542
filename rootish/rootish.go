// Package rootish implements a space-efficient array stack.
//
// A Stack stores n elements in O(√n) blocks, where block b holds b+1
// elements, so at most O(√n) slots are unused at any time. Elements are never
// copied when the stack grows or shrinks; blocks are added or released whole.
package rootish

import (
	"math"

	"github.com/zephyrtronium/ods/array"
	"github.com/zephyrtronium/ods/arraystack"
	"github.com/zephyrtronium/ods/list"
)

// Stack is a list stored in blocks of increasing size.
// The zero value is an empty stack ready to use.
type Stack[E any] struct {
	blocks arraystack.Stack[*array.Bounded[E]]
	n      int
}

// New returns an empty stack.
func New[E any]() *Stack[E] {
	return new(Stack[E])
}

// Len returns the number of elements in the stack.
func (s *Stack[E]) Len() int {
	return s.n
}

// Blocks returns the number of allocated blocks.
func (s *Stack[E]) Blocks() int {
	return s.blocks.Len()
}

// Cap returns the total number of slots across all blocks.
func (s *Stack[E]) Cap() int {
	return triangle(s.blocks.Len())
}

// Copies returns the number of elements moved while growing or shrinking,
// which is always zero. It exists for comparison with the other lists.
func (s *Stack[E]) Copies() int {
	return 0
}

// Get returns the element at index i.
func (s *Stack[E]) Get(i int) (E, error) {
	if err := list.Check(i, s.n); err != nil {
		var zero E
		return zero, err
	}
	blk, j := s.locate(i)
	return blk.At(j), nil
}

// Set replaces the element at index i and returns the previous one.
func (s *Stack[E]) Set(i int, x E) (E, error) {
	if err := list.Check(i, s.n); err != nil {
		var zero E
		return zero, err
	}
	blk, j := s.locate(i)
	y := blk.At(j)
	blk.Put(j, x)
	return y, nil
}

// Add inserts x at index i, shifting elements at i and later up by one.
func (s *Stack[E]) Add(i int, x E) error {
	if err := list.CheckAdd(i, s.n); err != nil {
		return err
	}
	if s.Cap() < s.n+1 {
		s.grow()
	}
	s.n++
	for k := s.n - 1; k > i; k-- {
		s.put(k, s.at(k-1))
	}
	s.put(i, x)
	return nil
}

// Remove deletes and returns the element at index i, shifting later elements
// down by one.
func (s *Stack[E]) Remove(i int) (E, error) {
	if err := list.Check(i, s.n); err != nil {
		var zero E
		return zero, err
	}
	x := s.at(i)
	for k := i; k < s.n-1; k++ {
		s.put(k, s.at(k+1))
	}
	var zero E
	s.put(s.n-1, zero)
	s.n--
	if r := s.blocks.Len(); triangle(r-2) >= s.n {
		s.shrink()
	}
	return x, nil
}

// Clear removes all elements and releases every block.
func (s *Stack[E]) Clear() {
	for s.blocks.Len() > 0 {
		blk, _ := s.blocks.Pop()
		blk.Release()
	}
	s.blocks.Clear()
	s.n = 0
}

// grow appends a new block one larger than the current last block.
func (s *Stack[E]) grow() {
	r := s.blocks.Len()
	s.blocks.Push(array.New[E](r + 1))
}

// shrink releases trailing blocks until at most one is entirely unused.
func (s *Stack[E]) shrink() {
	for r := s.blocks.Len(); r > 0 && triangle(r-2) >= s.n; r-- {
		blk, _ := s.blocks.Pop()
		blk.Release()
	}
}

// locate returns the block holding index i and the offset within it.
func (s *Stack[E]) locate(i int) (*array.Bounded[E], int) {
	b := i2b(i)
	blk, err := s.blocks.Get(b)
	if err != nil {
		// Only reachable if the block invariant is broken.
		panic(err)
	}
	return blk, i - triangle(b)
}

func (s *Stack[E]) at(i int) E {
	blk, j := s.locate(i)
	return blk.At(j)
}

func (s *Stack[E]) put(i int, x E) {
	blk, j := s.locate(i)
	blk.Put(j, x)
}

// i2b returns the block containing index i, the unique b such that
// b(b+1)/2 <= i < (b+1)(b+2)/2.
func i2b(i int) int {
	b := int(math.Ceil((-3 + math.Sqrt(9+8*float64(i))) / 2))
	// The closed form is exact for small i, but rounding can land one block
	// off once 9+8i is too large to represent exactly.
	for b > 0 && triangle(b) > i {
		b--
	}
	for triangle(b+1) <= i {
		b++
	}
	return b
}

// triangle returns the number of slots in blocks 0 through r-1, r(r+1)/2.
// Non-positive r counts as no blocks.
func triangle(r int) int {
	if r <= 0 {
		return 0
	}
	return r * (r + 1) / 2
}
