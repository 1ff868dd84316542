// Package listtest provides conformance testing facilities for lists and
// queues.
package listtest

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/ods/list"
)

// Copier is implemented by containers which count the elements they move
// while resizing or rebalancing.
type Copier interface {
	Copies() int
}

// Invariant checks a container's internal invariants, returning a non-nil
// error describing the first violation.
type Invariant[L any] func(l L) error

// Test runs the conformance suite against lists produced by new.
// Each subtest uses a fresh list. If inv is not nil, it is checked after
// every mutation in the randomized tests.
func Test[L list.List[int]](t *testing.T, new func() L, inv Invariant[L]) {
	t.Run("scenario", testScenario(new))
	t.Run("bounds", testBounds(new))
	t.Run("roundtrip", testRoundtrip(new))
	t.Run("ends", testEnds(new, inv))
	t.Run("model", testModel(new, inv))
	t.Run("amortized", testAmortized(new))
}

// want compares the contents of l against a model.
func want[E any](t *testing.T, l list.List[E], model []E) {
	t.Helper()
	if l.Len() != len(model) {
		t.Errorf("wrong length: want %d, got %d", len(model), l.Len())
	}
	if diff := cmp.Diff(list.Elements(l), model, cmpEmpty); diff != "" {
		t.Errorf("wrong contents (+got/-want):\n%s", diff)
	}
}

// cmpEmpty treats nil and empty slices as equal.
var cmpEmpty = cmp.Comparer(func(a, b []int) bool { return slices.Equal(a, b) })

func testScenario[L list.List[int]](new func() L) func(t *testing.T) {
	return func(t *testing.T) {
		l := new()
		want(t, l, nil)
		for i, x := range []int{1, 2, 3} {
			if err := l.Add(i, x); err != nil {
				t.Fatalf("couldn't add %d at %d: %v", x, i, err)
			}
		}
		want(t, l, []int{1, 2, 3})
		x, err := l.Remove(1)
		if err != nil {
			t.Fatalf("couldn't remove 1: %v", err)
		}
		if x != 2 {
			t.Errorf("wrong removed element: want 2, got %d", x)
		}
		want(t, l, []int{1, 3})
		y, err := l.Set(1, 4)
		if err != nil {
			t.Fatalf("couldn't set 1: %v", err)
		}
		if y != 3 {
			t.Errorf("wrong previous element: want 3, got %d", y)
		}
		want(t, l, []int{1, 4})
	}
}

func isIndexError(t *testing.T, name string, err error) {
	t.Helper()
	var ie *list.IndexError
	if !errors.As(err, &ie) {
		t.Errorf("%s: wrong error: want *list.IndexError, got %#v", name, err)
	}
	if !errors.Is(err, list.ErrIndex) {
		t.Errorf("%s: error doesn't wrap ErrIndex: %v", name, err)
	}
}

func testBounds[L list.List[int]](new func() L) func(t *testing.T) {
	return func(t *testing.T) {
		for _, n := range []int{0, 1, 2, 5} {
			l := new()
			model := make([]int, 0, n)
			for i := range n {
				if err := l.Add(i, i*10); err != nil {
					t.Fatalf("couldn't add %d: %v", i, err)
				}
				model = append(model, i*10)
			}
			for _, i := range []int{-1, n, n + 1} {
				_, err := l.Get(i)
				isIndexError(t, "get", err)
				_, err = l.Set(i, 99)
				isIndexError(t, "set", err)
				_, err = l.Remove(i)
				isIndexError(t, "remove", err)
			}
			for _, i := range []int{-1, n + 1} {
				err := l.Add(i, 99)
				isIndexError(t, "add", err)
			}
			// Failed operations must not modify the list.
			want(t, l, model)
		}
	}
}

func testRoundtrip[L list.List[int]](new func() L) func(t *testing.T) {
	return func(t *testing.T) {
		l := new()
		const n = 40
		for i := range n {
			// Insert at the front so that every container shifts.
			if err := l.Add(0, i); err != nil {
				t.Fatalf("couldn't add %d: %v", i, err)
			}
		}
		for i := range n {
			if _, err := l.Set(i, -i); err != nil {
				t.Fatalf("couldn't set %d: %v", i, err)
			}
			x, err := l.Get(i)
			if err != nil {
				t.Fatalf("couldn't get %d: %v", i, err)
			}
			if x != -i {
				t.Errorf("wrong element at %d: want %d, got %d", i, -i, x)
			}
		}
	}
}

func testEnds[L list.List[int]](new func() L, inv Invariant[L]) func(t *testing.T) {
	return func(t *testing.T) {
		l := new()
		var model []int
		check := func() {
			t.Helper()
			if inv == nil {
				return
			}
			if err := inv(l); err != nil {
				t.Fatalf("invariant violated at len %d: %v", l.Len(), err)
			}
		}
		// Grow from both ends, then drain from both ends.
		for i := range 100 {
			if i%2 == 0 {
				if err := l.Add(0, i); err != nil {
					t.Fatal(err)
				}
				model = slices.Insert(model, 0, i)
			} else {
				if err := list.Push(l, i); err != nil {
					t.Fatal(err)
				}
				model = append(model, i)
			}
			check()
		}
		want(t, l, model)
		for len(model) > 0 {
			if len(model)%3 == 0 {
				x, err := l.Remove(0)
				if err != nil {
					t.Fatal(err)
				}
				if x != model[0] {
					t.Fatalf("wrong front element: want %d, got %d", model[0], x)
				}
				model = model[1:]
			} else {
				x, err := list.Pop(l)
				if err != nil {
					t.Fatal(err)
				}
				if x != model[len(model)-1] {
					t.Fatalf("wrong back element: want %d, got %d", model[len(model)-1], x)
				}
				model = model[:len(model)-1]
			}
			check()
		}
		want(t, l, nil)
		if _, err := list.Pop(l); !errors.Is(err, list.ErrEmpty) {
			t.Errorf("wrong error popping empty list: %v", err)
		}
	}
}

type op int

const (
	opAdd op = iota
	opRemove
	opGet
	opSet
)

func testModel[L list.List[int]](new func() L, inv Invariant[L]) func(t *testing.T) {
	return func(t *testing.T) {
		for seed := range uint64(4) {
			l := new()
			rng := rand.New(rand.NewPCG(seed, 0x5eed))
			var model []int
			adds, removes := 0, 0
			for k := range 1500 {
				// Bias towards growth early and shrinking late so that both
				// directions of resizing happen.
				o := op(rng.IntN(4))
				if k > 1000 && o == opAdd {
					o = opRemove
				}
				switch o {
				case opAdd:
					i := rng.IntN(len(model) + 1)
					if err := l.Add(i, k); err != nil {
						t.Fatalf("seed %d step %d: couldn't add at %d: %v", seed, k, i, err)
					}
					model = slices.Insert(model, i, k)
					adds++
				case opRemove:
					if len(model) == 0 {
						continue
					}
					i := rng.IntN(len(model))
					x, err := l.Remove(i)
					if err != nil {
						t.Fatalf("seed %d step %d: couldn't remove %d: %v", seed, k, i, err)
					}
					if x != model[i] {
						t.Fatalf("seed %d step %d: wrong removed element at %d: want %d, got %d", seed, k, i, model[i], x)
					}
					model = slices.Delete(model, i, i+1)
					removes++
				case opGet:
					if len(model) == 0 {
						continue
					}
					i := rng.IntN(len(model))
					x, err := l.Get(i)
					if err != nil || x != model[i] {
						t.Fatalf("seed %d step %d: wrong get at %d: want %d, got %d, %v", seed, k, i, model[i], x, err)
					}
				case opSet:
					if len(model) == 0 {
						continue
					}
					i := rng.IntN(len(model))
					y, err := l.Set(i, -k)
					if err != nil || y != model[i] {
						t.Fatalf("seed %d step %d: wrong set at %d: want %d, got %d, %v", seed, k, i, model[i], y, err)
					}
					model[i] = -k
				}
				if l.Len() != adds-removes {
					t.Fatalf("seed %d step %d: wrong length: want %d, got %d", seed, k, adds-removes, l.Len())
				}
				if inv != nil && (o == opAdd || o == opRemove) {
					if err := inv(l); err != nil {
						t.Fatalf("seed %d step %d: invariant violated: %v", seed, k, err)
					}
				}
			}
			want(t, l, model)
		}
	}
}

func testAmortized[L list.List[int]](new func() L) func(t *testing.T) {
	return func(t *testing.T) {
		l := new()
		c, ok := any(l).(Copier)
		if !ok {
			t.Skip("list doesn't count copies")
		}
		rng := rand.New(rand.NewPCG(1, 2))
		const m = 20000
		ops := 0
		// Oscillate around resize thresholds, which is the worst case for
		// naive resizing policies.
		for ops < m {
			k := 1 + rng.IntN(64)
			for range k {
				if err := list.Push(l, ops); err != nil {
					t.Fatal(err)
				}
				ops++
			}
			for range rng.IntN(k + 1) {
				if _, err := l.Remove(rng.IntN(l.Len())); err != nil {
					t.Fatal(err)
				}
				ops++
			}
		}
		if got := c.Copies(); got > 8*ops {
			t.Errorf("too many copies: %d over %d operations", got, ops)
		}
	}
}
