package list_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/ods/list"
)

// slice is a minimal List used to exercise the helpers.
type slice []int

func (s *slice) Len() int { return len(*s) }

func (s *slice) Get(i int) (int, error) {
	if err := list.Check(i, len(*s)); err != nil {
		return 0, err
	}
	return (*s)[i], nil
}

func (s *slice) Set(i int, x int) (int, error) {
	if err := list.Check(i, len(*s)); err != nil {
		return 0, err
	}
	y := (*s)[i]
	(*s)[i] = x
	return y, nil
}

func (s *slice) Add(i int, x int) error {
	if err := list.CheckAdd(i, len(*s)); err != nil {
		return err
	}
	*s = append(*s, 0)
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = x
	return nil
}

func (s *slice) Remove(i int) (int, error) {
	if err := list.Check(i, len(*s)); err != nil {
		return 0, err
	}
	x := (*s)[i]
	*s = append((*s)[:i], (*s)[i+1:]...)
	return x, nil
}

func TestCheck(t *testing.T) {
	cases := []struct {
		name string
		i, n int
		add  bool
		ok   bool
	}{
		{"zero-empty", 0, 0, false, false},
		{"add-empty", 0, 0, true, true},
		{"last", 2, 3, false, true},
		{"end", 3, 3, false, false},
		{"add-end", 3, 3, true, true},
		{"add-past", 4, 3, true, false},
		{"negative", -1, 3, false, false},
		{"add-negative", -1, 3, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var err error
			if c.add {
				err = list.CheckAdd(c.i, c.n)
			} else {
				err = list.Check(c.i, c.n)
			}
			if c.ok != (err == nil) {
				t.Errorf("wrong result: want ok=%t, got %v", c.ok, err)
			}
			if err != nil && !errors.Is(err, list.ErrIndex) {
				t.Errorf("error doesn't wrap ErrIndex: %v", err)
			}
		})
	}
}

func TestIndexErrorMessage(t *testing.T) {
	err := list.Check(5, 2)
	want := "list: index 5 out of range [0:2)"
	if err.Error() != want {
		t.Errorf("wrong message: want %q, got %q", want, err.Error())
	}
}

func TestHelpers(t *testing.T) {
	var s slice
	if got := list.Format[int](&s); got != "[]" {
		t.Errorf("wrong empty format: %q", got)
	}
	if list.Elements[int](&s) != nil {
		t.Error("empty elements not nil")
	}
	for _, x := range []int{1, 2, 3} {
		if err := list.Push[int](&s, x); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(list.Elements[int](&s), []int{1, 2, 3}); diff != "" {
		t.Errorf("wrong elements (+got/-want):\n%s", diff)
	}
	if got := list.Format[int](&s); got != "[1, 2, 3]" {
		t.Errorf("wrong format: %q", got)
	}
	if got := list.FormatSlice([]string{"a", "b"}); got != "[a, b]" {
		t.Errorf("wrong slice format: %q", got)
	}
	if got := list.FormatSlice[int](nil); got != "[]" {
		t.Errorf("wrong nil slice format: %q", got)
	}
	for _, want := range []int{3, 2, 1} {
		x, err := list.Pop[int](&s)
		if err != nil {
			t.Fatal(err)
		}
		if x != want {
			t.Errorf("wrong pop: want %d, got %d", want, x)
		}
	}
	if _, err := list.Pop[int](&s); !errors.Is(err, list.ErrEmpty) {
		t.Errorf("wrong error popping empty list: %v", err)
	}
}
