package arraystack_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/ods/array"
	"github.com/zephyrtronium/ods/arraystack"
	"github.com/zephyrtronium/ods/list"
	"github.com/zephyrtronium/ods/list/listtest"
)

// capacity is the method set shared by both stacks for invariant checks.
type capacity interface {
	list.List[int]
	Cap() int
}

func capInvariant[L capacity](l L) error {
	n, c := l.Len(), l.Cap()
	if n > c {
		return fmt.Errorf("length %d exceeds capacity %d", n, c)
	}
	if n > 0 && c >= 3*n {
		// Removal shrinks as soon as the capacity reaches 3n, and growth
		// only doubles.
		return fmt.Errorf("capacity %d persists at length %d", c, n)
	}
	return nil
}

func TestStack(t *testing.T) {
	listtest.Test(t, arraystack.New[int], capInvariant[*arraystack.Stack[int]])
}

func TestFast(t *testing.T) {
	listtest.Test(t, arraystack.NewFast[int], capInvariant[*arraystack.Fast[int]])
}

func TestZeroValue(t *testing.T) {
	var s arraystack.Stack[string]
	var f arraystack.Fast[string]
	for _, l := range []list.List[string]{&s, &f} {
		if err := l.Add(0, "bocchi"); err != nil {
			t.Errorf("%T: couldn't add to zero value: %v", l, err)
		}
		if got := list.Format(l); got != "[bocchi]" {
			t.Errorf("%T: wrong contents: %s", l, got)
		}
	}
}

func TestScenario(t *testing.T) {
	s := arraystack.New[int]()
	s.Add(0, 1)
	s.Add(1, 2)
	s.Add(2, 3)
	if s.Len() != 3 {
		t.Errorf("wrong length: want 3, got %d", s.Len())
	}
	if diff := cmp.Diff(list.Elements(s), []int{1, 2, 3}); diff != "" {
		t.Errorf("wrong contents (+got/-want):\n%s", diff)
	}
	x, err := s.Remove(1)
	if err != nil || x != 2 {
		t.Errorf("wrong remove: want 2, got %d, %v", x, err)
	}
	if diff := cmp.Diff(list.Elements(s), []int{1, 3}); diff != "" {
		t.Errorf("wrong contents (+got/-want):\n%s", diff)
	}
}

func TestResize(t *testing.T) {
	cases := []struct {
		name string
		push int
		pop  int
		cap  int
	}{
		{"empty", 0, 0, 0},
		{"one", 1, 0, 1},
		{"two", 2, 0, 2},
		{"three", 3, 0, 4},
		{"five", 5, 0, 8},
		{"shrink", 8, 6, 4},
		{"drain", 4, 4, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := arraystack.New[int]()
			f := arraystack.NewFast[int]()
			for i := range c.push {
				s.Push(i)
				f.Push(i)
			}
			for range c.pop {
				s.Pop()
				f.Pop()
			}
			if s.Cap() != c.cap {
				t.Errorf("wrong Stack capacity: want %d, got %d", c.cap, s.Cap())
			}
			if f.Cap() != c.cap {
				t.Errorf("wrong Fast capacity: want %d, got %d", c.cap, f.Cap())
			}
			if s.Copies() != f.Copies() {
				t.Errorf("copy counts disagree: Stack %d, Fast %d", s.Copies(), f.Copies())
			}
		})
	}
}

func TestPop(t *testing.T) {
	s := arraystack.New[int]()
	if _, err := s.Pop(); !errors.Is(err, list.ErrEmpty) {
		t.Errorf("wrong error popping empty stack: %v", err)
	}
	s.Push(1)
	s.Push(2)
	for _, want := range []int{2, 1} {
		x, err := s.Pop()
		if err != nil || x != want {
			t.Errorf("wrong pop: want %d, got %d, %v", want, x, err)
		}
	}
}

func TestAdopt(t *testing.T) {
	s := arraystack.New[int]()
	s.Push(9)
	b := array.New[int](4)
	b.Put(0, 1)
	b.Put(1, 2)
	s.Adopt(b, 2)
	if b.Len() != 0 {
		t.Errorf("adopted array not emptied: len %d", b.Len())
	}
	if diff := cmp.Diff(list.Elements(s), []int{1, 2}); diff != "" {
		t.Errorf("wrong contents (+got/-want):\n%s", diff)
	}
	if s.Cap() != 4 {
		t.Errorf("wrong capacity: want 4, got %d", s.Cap())
	}
	defer func() {
		if recover() == nil {
			t.Error("no panic adopting too many elements")
		}
	}()
	s.Adopt(array.New[int](1), 2)
}

func TestClear(t *testing.T) {
	s := arraystack.New[int]()
	f := arraystack.NewFast[int]()
	for i := range 10 {
		s.Push(i)
		f.Push(i)
	}
	s.Clear()
	f.Clear()
	if s.Len() != 0 || s.Cap() != 0 {
		t.Errorf("Stack not cleared: len %d cap %d", s.Len(), s.Cap())
	}
	if f.Len() != 0 || f.Cap() != 0 {
		t.Errorf("Fast not cleared: len %d cap %d", f.Len(), f.Cap())
	}
	s.Push(1)
	f.Push(1)
	if s.Len() != 1 || f.Len() != 1 {
		t.Error("couldn't reuse cleared stacks")
	}
}

func BenchmarkAddFront(b *testing.B) {
	b.Run("Stack", func(b *testing.B) {
		s := arraystack.New[int]()
		for i := range b.N {
			s.Add(0, i)
			if s.Len() > 1024 {
				s.Clear()
			}
		}
	})
	b.Run("Fast", func(b *testing.B) {
		s := arraystack.NewFast[int]()
		for i := range b.N {
			s.Add(0, i)
			if s.Len() > 1024 {
				s.Clear()
			}
		}
	})
}
