package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/zephyrtronium/ods/list"
	"github.com/zephyrtronium/ods/metrics"
)

// op is an operation in a workload.
type op int

const (
	opAdd op = iota
	opRemove
	opGet
	opSet
)

func (o op) String() string {
	switch o {
	case opAdd:
		return "add"
	case opRemove:
		return "remove"
	case opGet:
		return "get"
	case opSet:
		return "set"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// errMismatch is wrapped by errors reporting a container whose results
// disagree with its model.
var errMismatch = errors.New("container disagrees with model")

// model mirrors the operations applied to a container onto a slice and
// checks every result against it.
type model struct {
	kind    string
	el      []int
	metrics *metrics.Metrics
	// copies and cap are the container's counters as of the last operation.
	copies int
	cap    int

	ops     int
	moved   int
	resizes int
}

func newModel(kind string, m *metrics.Metrics, c any) *model {
	return &model{
		kind:    kind,
		metrics: m,
		copies:  copies(c),
		cap:     capacity(c),
	}
}

func (md *model) mismatch(o op, format string, args ...any) error {
	md.metrics.Mismatches.Observe(1, md.kind, o.String())
	return fmt.Errorf("%s %v: %s: %w", md.kind, o, fmt.Sprintf(format, args...), errMismatch)
}

// list applies o to l and the model. Values added or set are x.
func (md *model) list(l list.List[int], o op, rng *rand.Rand, x int) error {
	n := len(md.el)
	if l.Len() != n {
		return md.mismatch(o, "length is %d, want %d", l.Len(), n)
	}
	switch o {
	case opAdd:
		i := rng.IntN(n + 1)
		if err := l.Add(i, x); err != nil {
			return md.mismatch(o, "couldn't add at %d: %v", i, err)
		}
		md.el = slices.Insert(md.el, i, x)
	case opRemove:
		if n == 0 {
			if _, err := l.Remove(0); !errors.Is(err, list.ErrIndex) {
				return md.mismatch(o, "removing from empty list gave %v", err)
			}
			break
		}
		i := rng.IntN(n)
		y, err := l.Remove(i)
		if err != nil {
			return md.mismatch(o, "couldn't remove at %d: %v", i, err)
		}
		if y != md.el[i] {
			return md.mismatch(o, "removed %d at %d, want %d", y, i, md.el[i])
		}
		md.el = slices.Delete(md.el, i, i+1)
	case opGet:
		if err := md.get(l, o, rng); err != nil {
			return err
		}
	case opSet:
		if err := md.set(l, o, rng, x); err != nil {
			return err
		}
	}
	md.observe(l, o)
	return nil
}

// queue applies o to q and the model. If fifo is false, removals may take
// any element. Values added must be distinct.
func (md *model) queue(q list.Queue[int], fifo bool, o op, rng *rand.Rand, x int) error {
	n := len(md.el)
	if q.Len() != n {
		return md.mismatch(o, "length is %d, want %d", q.Len(), n)
	}
	switch o {
	case opAdd:
		q.Add(x)
		md.el = append(md.el, x)
	case opRemove:
		y, err := q.Remove()
		if n == 0 {
			if !errors.Is(err, list.ErrEmpty) {
				return md.mismatch(o, "removing from empty queue gave %d, %v", y, err)
			}
			break
		}
		if err != nil {
			return md.mismatch(o, "couldn't remove: %v", err)
		}
		if fifo {
			if y != md.el[0] {
				return md.mismatch(o, "removed %d, want %d", y, md.el[0])
			}
			md.el = slices.Delete(md.el, 0, 1)
			break
		}
		// Removal from the middle fills the hole with the last element.
		k := slices.Index(md.el, y)
		if k < 0 {
			return md.mismatch(o, "removed %d which was never added", y)
		}
		md.el[k] = md.el[n-1]
		md.el = md.el[:n-1]
	case opGet:
		if ix, ok := q.(indexed); ok {
			if err := md.get(ix, o, rng); err != nil {
				return err
			}
		}
	case opSet:
		if ix, ok := q.(indexed); ok {
			if err := md.set(ix, o, rng, x); err != nil {
				return err
			}
		}
	}
	md.observe(q, o)
	return nil
}

func (md *model) get(l indexed, o op, rng *rand.Rand) error {
	n := len(md.el)
	if n == 0 {
		if _, err := l.Get(0); !errors.Is(err, list.ErrIndex) {
			return md.mismatch(o, "getting from empty container gave %v", err)
		}
		return nil
	}
	i := rng.IntN(n)
	y, err := l.Get(i)
	if err != nil {
		return md.mismatch(o, "couldn't get %d: %v", i, err)
	}
	if y != md.el[i] {
		return md.mismatch(o, "got %d at %d, want %d", y, i, md.el[i])
	}
	return nil
}

func (md *model) set(l indexed, o op, rng *rand.Rand, x int) error {
	n := len(md.el)
	if n == 0 {
		if _, err := l.Set(0, x); !errors.Is(err, list.ErrIndex) {
			return md.mismatch(o, "setting in empty container gave %v", err)
		}
		return nil
	}
	i := rng.IntN(n)
	y, err := l.Set(i, x)
	if err != nil {
		return md.mismatch(o, "couldn't set %d: %v", i, err)
	}
	if y != md.el[i] {
		return md.mismatch(o, "replaced %d at %d, want %d", y, i, md.el[i])
	}
	md.el[i] = x
	return nil
}

// observe records an operation and any copying or resizing it caused.
func (md *model) observe(c any, o op) {
	md.ops++
	md.metrics.Ops.Observe(1, md.kind, o.String())
	if k := copies(c); k != md.copies {
		md.metrics.Copies.Observe(float64(k-md.copies), md.kind)
		md.moved += k - md.copies
		md.copies = k
	}
	if k := capacity(c); k != md.cap {
		md.metrics.Resizes.Observe(1, md.kind)
		md.resizes++
		md.cap = k
	}
}

// verify checks the full contents of c against the model.
func (md *model) verify(c interface{ Len() int }) error {
	if c.Len() != len(md.el) {
		return fmt.Errorf("%s: length is %d, want %d: %w", md.kind, c.Len(), len(md.el), errMismatch)
	}
	if _, ok := c.(list.List[int]); !ok {
		if _, ok := c.(indexed); !ok {
			return nil
		}
	}
	if got := elements(c); !slices.Equal(got, md.el) {
		return fmt.Errorf("%s: contents are %v, want %v: %w", md.kind, got, md.el, errMismatch)
	}
	return nil
}
