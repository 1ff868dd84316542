package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"gitlab.com/zephyrtronium/pick"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/ods/list"
	"github.com/zephyrtronium/ods/metrics"
	"github.com/zephyrtronium/ods/synclist"
)

// result summarizes a workload run against one kind of container.
type result struct {
	Kind    string
	Ops     int
	Copies  int
	Resizes int
	Len     int
	Time    time.Duration
}

// CopiesPerOp returns the average number of elements moved per operation.
func (r result) CopiesPerOp() float64 {
	if r.Ops == 0 {
		return 0
	}
	return float64(r.Copies) / float64(r.Ops)
}

// batch is the number of operations between latency observations and
// cancellation checks.
const batch = 256

// target is a container under test along with its model.
type target struct {
	md   *model
	fifo bool
	// Exactly one of withList and withQueue is non-nil. Each calls its
	// argument with exclusive access to the container.
	withList  func(func(list.List[int]))
	withQueue func(func(list.Queue[int]))
}

func newTarget(k kind, m *metrics.Metrics, rng *rand.Rand, shared bool) *target {
	t := target{fifo: k.fifo}
	if k.list != nil {
		l := k.list()
		t.md = newModel(k.name, m, l)
		if shared {
			t.withList = synclist.New(l).Do
		} else {
			t.withList = func(f func(list.List[int])) { f(l) }
		}
		return &t
	}
	q := k.queue(rng)
	t.md = newModel(k.name, m, q)
	if shared {
		t.withQueue = synclist.NewQueue(q).Do
	} else {
		t.withQueue = func(f func(list.Queue[int])) { f(q) }
	}
	return &t
}

// step performs one operation.
func (t *target) step(o op, rng *rand.Rand, x int) error {
	var err error
	if t.withList != nil {
		t.withList(func(l list.List[int]) { err = t.md.list(l, o, rng, x) })
	} else {
		t.withQueue(func(q list.Queue[int]) { err = t.md.queue(q, t.fifo, o, rng, x) })
	}
	return err
}

// verify checks the container's final contents and reports its length.
func (t *target) verify() (n int, err error) {
	if t.withList != nil {
		t.withList(func(l list.List[int]) { n, err = l.Len(), t.md.verify(l) })
	} else {
		t.withQueue(func(q list.Queue[int]) { n, err = q.Len(), t.md.verify(q) })
	}
	return n, err
}

// opDist returns the distribution of operations given by w.
func opDist(w Weights) *pick.Dist[op] {
	return pick.New([]pick.Case[op]{
		{E: opAdd, W: w.Add},
		{E: opRemove, W: w.Remove},
		{E: opGet, W: w.Get},
		{E: opSet, W: w.Set},
	})
}

// runWorkload runs w against containers of kind k, checking every result
// against a model. Each worker uses its own container unless w.Shared is set.
func runWorkload(ctx context.Context, w Workload, k kind, m *metrics.Metrics) (result, error) {
	start := time.Now()
	dist := opDist(w.Weights)
	workers := max(w.Workers, 1)
	var shared *target
	if w.Shared {
		shared = newTarget(k, m, rand.New(rand.NewPCG(w.Seed, ^uint64(0))), true)
	}
	var (
		mu  sync.Mutex
		res = result{Kind: k.name}
	)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for id := range workers {
		ops := w.Ops / workers
		if id < w.Ops%workers {
			ops++
		}
		group.Go(func() error {
			rng := rand.New(rand.NewPCG(w.Seed, uint64(id)))
			t := shared
			if t == nil {
				t = newTarget(k, m, rand.New(rand.NewPCG(w.Seed, ^uint64(id))), false)
			}
			// Values are distinct across all workers.
			base := id * (w.Ops/workers + 1)
			last := time.Now()
			for j := range ops {
				if j%batch == 0 && j != 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
					now := time.Now()
					m.OpLatency.Observe(now.Sub(last).Seconds(), k.name)
					last = now
				}
				o := dist.Pick(rng.Uint32())
				if err := t.step(o, rng, base+j); err != nil {
					return err
				}
			}
			if shared != nil {
				return nil
			}
			n, err := t.verify()
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			res.Ops += t.md.ops
			res.Copies += t.md.moved
			res.Resizes += t.md.resizes
			res.Len += n
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return result{}, fmt.Errorf("couldn't run %s workload: %w", k.name, err)
	}
	if shared != nil {
		n, err := shared.verify()
		if err != nil {
			return result{}, err
		}
		res.Ops = shared.md.ops
		res.Copies = shared.md.moved
		res.Resizes = shared.md.resizes
		res.Len = n
	}
	res.Time = time.Since(start)
	m.Length.Observe(float64(res.Len), k.name)
	return res, nil
}
