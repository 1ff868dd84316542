package listtest

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/ods/list"
)

// TestQueue runs the conformance suite against queues produced by new.
// If fifo is true, the suite also requires elements to leave the queue in the
// order they were added. Otherwise it only requires that every element added
// is removed exactly once. If inv is not nil, it is checked after every Add
// and Remove.
func TestQueue[Q list.Queue[int]](t *testing.T, new func() Q, fifo bool, inv Invariant[Q]) {
	t.Run("empty", testQueueEmpty(new, inv))
	t.Run("drain", testQueueDrain(new, fifo, inv))
	t.Run("interleaved", testQueueInterleaved(new, fifo, inv))
	t.Run("amortized", testQueueAmortized(new, inv))
}

// checkQueue reports a violation of inv, if any.
func checkQueue[Q list.Queue[int]](t *testing.T, q Q, inv Invariant[Q]) {
	t.Helper()
	if inv == nil {
		return
	}
	if err := inv(q); err != nil {
		t.Fatalf("invariant violated at len %d: %v", q.Len(), err)
	}
}

func testQueueEmpty[Q list.Queue[int]](new func() Q, inv Invariant[Q]) func(t *testing.T) {
	return func(t *testing.T) {
		q := new()
		if q.Len() != 0 {
			t.Errorf("new queue has length %d", q.Len())
		}
		checkQueue(t, q, inv)
		if _, err := q.Remove(); !errors.Is(err, list.ErrEmpty) {
			t.Errorf("wrong error removing from empty queue: %v", err)
		}
		checkQueue(t, q, inv)
		q.Add(1)
		checkQueue(t, q, inv)
		if _, err := q.Remove(); err != nil {
			t.Errorf("couldn't remove only element: %v", err)
		}
		checkQueue(t, q, inv)
		if _, err := q.Remove(); !errors.Is(err, list.ErrEmpty) {
			t.Errorf("wrong error removing from emptied queue: %v", err)
		}
		checkQueue(t, q, inv)
		if q.Len() != 0 {
			t.Errorf("emptied queue has length %d", q.Len())
		}
	}
}

func testQueueDrain[Q list.Queue[int]](new func() Q, fifo bool, inv Invariant[Q]) func(t *testing.T) {
	return func(t *testing.T) {
		q := new()
		const n = 100
		in := make([]int, n)
		for i := range in {
			in[i] = i
			q.Add(i)
			if q.Len() != i+1 {
				t.Fatalf("wrong length after %d adds: %d", i+1, q.Len())
			}
			checkQueue(t, q, inv)
		}
		out := make([]int, 0, n)
		for q.Len() > 0 {
			x, err := q.Remove()
			if err != nil {
				t.Fatalf("couldn't remove with length %d: %v", q.Len(), err)
			}
			out = append(out, x)
			checkQueue(t, q, inv)
		}
		if !fifo {
			slices.Sort(out)
		}
		if diff := cmp.Diff(out, in); diff != "" {
			t.Errorf("wrong removal order (+got/-want):\n%s", diff)
		}
	}
}

func testQueueInterleaved[Q list.Queue[int]](new func() Q, fifo bool, inv Invariant[Q]) func(t *testing.T) {
	return func(t *testing.T) {
		q := new()
		rng := rand.New(rand.NewPCG(3, 4))
		var in, out []int
		next := 0
		for range 2000 {
			if rng.IntN(5) < 3 || q.Len() == 0 {
				q.Add(next)
				in = append(in, next)
				next++
				checkQueue(t, q, inv)
				continue
			}
			x, err := q.Remove()
			if err != nil {
				t.Fatalf("couldn't remove with length %d: %v", q.Len(), err)
			}
			out = append(out, x)
			if len(in)-len(out) != q.Len() {
				t.Fatalf("wrong length: want %d, got %d", len(in)-len(out), q.Len())
			}
			checkQueue(t, q, inv)
		}
		for q.Len() > 0 {
			x, _ := q.Remove()
			out = append(out, x)
			checkQueue(t, q, inv)
		}
		if !fifo {
			slices.Sort(out)
		}
		if diff := cmp.Diff(out, in); diff != "" {
			t.Errorf("wrong elements removed (+got/-want):\n%s", diff)
		}
	}
}

func testQueueAmortized[Q list.Queue[int]](new func() Q, inv Invariant[Q]) func(t *testing.T) {
	return func(t *testing.T) {
		q := new()
		c, ok := any(q).(Copier)
		if !ok {
			t.Skip("queue doesn't count copies")
		}
		rng := rand.New(rand.NewPCG(5, 6))
		const m = 20000
		ops := 0
		for ops < m {
			k := 1 + rng.IntN(64)
			for range k {
				q.Add(ops)
				ops++
				checkQueue(t, q, inv)
			}
			for range rng.IntN(k + 1) {
				if _, err := q.Remove(); err != nil {
					t.Fatal(err)
				}
				ops++
				checkQueue(t, q, inv)
			}
		}
		if got := c.Copies(); got > 8*ops {
			t.Errorf("too many copies: %d over %d operations", got, ops)
		}
	}
}
