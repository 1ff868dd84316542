// Package list defines the capabilities shared by the array-backed
// containers in this module.
//
// None of the containers are safe for concurrent use. Callers which share a
// container between goroutines must serialize access themselves, e.g. with
// one mutex per container; package synclist provides exactly that.
package list

import (
	"errors"
	"fmt"
	"strings"
)

// List is an indexed sequence. Indices run from 0 to Len()-1.
type List[E any] interface {
	// Len returns the number of elements in the list.
	Len() int
	// Get returns the element at index i.
	Get(i int) (E, error)
	// Set replaces the element at index i and returns the previous one.
	Set(i int, x E) (E, error)
	// Add inserts x at index i, shifting later elements up by one.
	// Valid indices are 0 through Len() inclusive.
	Add(i int, x E) error
	// Remove deletes and returns the element at index i.
	Remove(i int) (E, error)
}

// Queue is a collection with single-ended insertion and removal.
type Queue[E any] interface {
	// Len returns the number of elements in the queue.
	Len() int
	// Add inserts x into the queue.
	Add(x E)
	// Remove deletes an element from the queue and returns it.
	// The element chosen depends on the queue discipline.
	Remove() (E, error)
}

// ErrIndex is the error wrapped by every [*IndexError].
var ErrIndex = errors.New("index out of range")

// ErrEmpty is returned when removing from an empty queue or stack.
var ErrEmpty = errors.New("list: empty")

// IndexError reports an index outside the valid range of a container.
type IndexError struct {
	// Index is the offending index.
	Index int
	// Len is the container's length at the time of the error.
	// The valid range was [0, Len).
	Len int
}

func (err *IndexError) Error() string {
	return fmt.Sprintf("list: index %d out of range [0:%d)", err.Index, err.Len)
}

// Unwrap returns [ErrIndex].
func (err *IndexError) Unwrap() error {
	return ErrIndex
}

// Check returns an *IndexError if i is outside [0, n).
func Check(i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Index: i, Len: n}
	}
	return nil
}

// CheckAdd returns an *IndexError if i is outside [0, n], the range of valid
// insertion points in a list of length n.
func CheckAdd(i, n int) error {
	if i < 0 || i > n {
		// Insertion at n is valid, so report the length as one more.
		return &IndexError{Index: i, Len: n + 1}
	}
	return nil
}

// Elements copies the contents of l into a new slice in index order.
// The result is nil if l is empty.
func Elements[E any](l List[E]) []E {
	n := l.Len()
	if n == 0 {
		return nil
	}
	r := make([]E, 0, n)
	for i := range n {
		x, err := l.Get(i)
		if err != nil {
			// Only possible if l is modified concurrently.
			panic(err)
		}
		r = append(r, x)
	}
	return r
}

// Format renders the elements of l as a bracketed, comma-separated list,
// e.g. "[1, 2, 3]".
func Format[E any](l List[E]) string {
	return FormatSlice(Elements(l))
}

// FormatSlice renders s the same way Format renders a list.
func FormatSlice[E any](s []E) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, x)
	}
	b.WriteByte(']')
	return b.String()
}

// Push adds x to the end of l.
func Push[E any](l List[E], x E) error {
	return l.Add(l.Len(), x)
}

// Pop removes and returns the last element of l.
// If l is empty, the error is [ErrEmpty].
func Pop[E any](l List[E]) (E, error) {
	n := l.Len()
	if n == 0 {
		var zero E
		return zero, ErrEmpty
	}
	return l.Remove(n - 1)
}
