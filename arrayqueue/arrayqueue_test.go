package arrayqueue_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/ods/arrayqueue"
	"github.com/zephyrtronium/ods/list"
	"github.com/zephyrtronium/ods/list/listtest"
)

// capacity is the method set shared by both queues for invariant checks.
type capacity interface {
	list.Queue[int]
	Cap() int
}

func capInvariant[Q capacity](q Q) error {
	n, c := q.Len(), q.Cap()
	if n > c {
		return fmt.Errorf("length %d exceeds capacity %d", n, c)
	}
	if n > 0 && c >= 3*n {
		// Removal shrinks as soon as the capacity reaches 3n.
		return fmt.Errorf("capacity %d persists at length %d", c, n)
	}
	return nil
}

func TestQueue(t *testing.T) {
	listtest.TestQueue(t, arrayqueue.New[int], true, capInvariant[*arrayqueue.Queue[int]])
}

func TestRandom(t *testing.T) {
	listtest.TestQueue(t, func() *arrayqueue.Random[int] {
		return arrayqueue.NewRandom[int](rand.New(rand.NewPCG(1, 1)))
	}, false, capInvariant[*arrayqueue.Random[int]])
}

func TestRandomZero(t *testing.T) {
	listtest.TestQueue(t, func() *arrayqueue.Random[int] { return new(arrayqueue.Random[int]) }, false, capInvariant[*arrayqueue.Random[int]])
}

func TestResize(t *testing.T) {
	cases := []struct {
		name string
		new  func() capacity
	}{
		{"queue", func() capacity { return arrayqueue.New[int]() }},
		{"random", func() capacity { return arrayqueue.NewRandom[int](rand.New(rand.NewPCG(2, 2))) }},
	}
	// Capacities after each of 8 adds, then after each of 8 removes.
	grow := []int{1, 2, 4, 4, 8, 8, 8, 8}
	shrink := []int{8, 8, 8, 8, 8, 4, 2, 1}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q := c.new()
			if q.Cap() != 0 {
				t.Errorf("new queue has capacity %d", q.Cap())
			}
			var got []int
			for i := range 8 {
				q.Add(i)
				got = append(got, q.Cap())
			}
			if diff := cmp.Diff(got, grow); diff != "" {
				t.Errorf("wrong capacities while growing (+got/-want):\n%s", diff)
			}
			got = got[:0]
			for range 8 {
				if _, err := q.Remove(); err != nil {
					t.Fatal(err)
				}
				got = append(got, q.Cap())
			}
			if diff := cmp.Diff(got, shrink); diff != "" {
				t.Errorf("wrong capacities while shrinking (+got/-want):\n%s", diff)
			}
		})
	}
}

func TestShrinkAfterPeak(t *testing.T) {
	q := arrayqueue.New[int]()
	for i := range 64 {
		q.Add(i)
	}
	if q.Cap() != 64 {
		t.Fatalf("wrong capacity at peak: want 64, got %d", q.Cap())
	}
	for q.Len() > 0 {
		if _, err := q.Remove(); err != nil {
			t.Fatal(err)
		}
		if err := capInvariant(q); err != nil {
			t.Fatal(err)
		}
	}
	if q.Cap() != 1 {
		t.Errorf("wrong capacity after draining: want 1, got %d", q.Cap())
	}
}

func TestScenario(t *testing.T) {
	q := arrayqueue.New[int]()
	q.Add(1)
	q.Add(2)
	q.Add(3)
	for _, want := range []int{1, 2} {
		x, err := q.Remove()
		if err != nil || x != want {
			t.Errorf("wrong remove: want %d, got %d, %v", want, x, err)
		}
	}
	if q.Len() != 1 {
		t.Errorf("wrong length: want 1, got %d", q.Len())
	}
	x, err := q.Get(0)
	if err != nil || x != 3 {
		t.Errorf("wrong head: want 3, got %d, %v", x, err)
	}
}

func elements(q *arrayqueue.Queue[int]) []int {
	var r []int
	for i := range q.Len() {
		x, err := q.Get(i)
		if err != nil {
			panic(err)
		}
		r = append(r, x)
	}
	return r
}

func TestWraparound(t *testing.T) {
	q := arrayqueue.New[int]()
	for i := range 8 {
		q.Add(i)
	}
	// Advance the head without triggering a shrink, then wrap the tail.
	for range 3 {
		q.Remove()
	}
	for i := 8; i < 11; i++ {
		q.Add(i)
	}
	if q.Cap() != 8 {
		t.Fatalf("wrong capacity: want 8, got %d", q.Cap())
	}
	want := []int{3, 4, 5, 6, 7, 8, 9, 10}
	if diff := cmp.Diff(elements(q), want); diff != "" {
		t.Errorf("wrong contents (+got/-want):\n%s", diff)
	}
	// Growing while wrapped must keep order.
	q.Add(11)
	want = append(want, 11)
	if diff := cmp.Diff(elements(q), want); diff != "" {
		t.Errorf("wrong contents after grow (+got/-want):\n%s", diff)
	}
	if q.Cap() != 16 {
		t.Errorf("wrong capacity after grow: want 16, got %d", q.Cap())
	}
}

func TestGetSet(t *testing.T) {
	q := arrayqueue.New[int]()
	for i := range 5 {
		q.Add(i)
	}
	q.Remove()
	q.Add(5)
	for i := range q.Len() {
		if _, err := q.Set(i, 10*i); err != nil {
			t.Fatalf("couldn't set %d: %v", i, err)
		}
		x, err := q.Get(i)
		if err != nil || x != 10*i {
			t.Errorf("wrong round trip at %d: got %d, %v", i, x, err)
		}
	}
	for _, i := range []int{-1, q.Len()} {
		if _, err := q.Get(i); !errors.Is(err, list.ErrIndex) {
			t.Errorf("wrong error getting %d: %v", i, err)
		}
		if _, err := q.Set(i, 0); !errors.Is(err, list.ErrIndex) {
			t.Errorf("wrong error setting %d: %v", i, err)
		}
	}
}

func TestRandomGetSet(t *testing.T) {
	q := arrayqueue.NewRandom[string](rand.New(rand.NewPCG(7, 7)))
	q.Add("bocchi")
	if y, err := q.Set(0, "ryo"); err != nil || y != "bocchi" {
		t.Errorf("wrong set: got %q, %v", y, err)
	}
	if x, err := q.Get(0); err != nil || x != "ryo" {
		t.Errorf("wrong get: got %q, %v", x, err)
	}
	if _, err := q.Get(1); !errors.Is(err, list.ErrIndex) {
		t.Errorf("wrong error getting past end: %v", err)
	}
}

func TestRandomUniform(t *testing.T) {
	// Each of the elements should be removed first about equally often.
	const n, trials = 4, 4000
	rng := rand.New(rand.NewPCG(11, 12))
	var counts [n]int
	for range trials {
		q := arrayqueue.NewRandom[int](rng)
		for i := range n {
			q.Add(i)
		}
		x, _ := q.Remove()
		counts[x]++
	}
	for i, c := range counts {
		// Expected trials/n = 1000; allow generous slack.
		if c < 800 || c > 1200 {
			t.Errorf("element %d removed first %d times of %d", i, c, trials)
		}
	}
}

func TestClear(t *testing.T) {
	q := arrayqueue.New[int]()
	r := arrayqueue.NewRandom[int](nil)
	for i := range 10 {
		q.Add(i)
		r.Add(i)
	}
	q.Clear()
	r.Clear()
	if q.Len() != 0 || q.Cap() != 0 || r.Len() != 0 || r.Cap() != 0 {
		t.Errorf("not cleared: %d/%d and %d/%d", q.Len(), q.Cap(), r.Len(), r.Cap())
	}
	q.Add(1)
	if x, err := q.Remove(); err != nil || x != 1 {
		t.Errorf("couldn't reuse cleared queue: %d, %v", x, err)
	}
}
