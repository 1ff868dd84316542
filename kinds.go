package main

import (
	"math/rand/v2"

	"github.com/zephyrtronium/ods/arrayqueue"
	"github.com/zephyrtronium/ods/arraystack"
	"github.com/zephyrtronium/ods/deque"
	"github.com/zephyrtronium/ods/dualdeque"
	"github.com/zephyrtronium/ods/list"
	"github.com/zephyrtronium/ods/rootish"
)

// kind describes how to construct one type of container.
// Exactly one of list and queue is non-nil.
type kind struct {
	name  string
	list  func() list.List[int]
	queue func(rng *rand.Rand) list.Queue[int]
	// fifo is whether a queue removes elements in insertion order.
	fifo bool
}

var kinds = []kind{
	{name: "arraystack", list: func() list.List[int] { return arraystack.New[int]() }},
	{name: "faststack", list: func() list.List[int] { return arraystack.NewFast[int]() }},
	{name: "arrayqueue", queue: func(*rand.Rand) list.Queue[int] { return arrayqueue.New[int]() }, fifo: true},
	{name: "randomqueue", queue: func(rng *rand.Rand) list.Queue[int] { return arrayqueue.NewRandom[int](rng) }},
	{name: "arraydeque", list: func() list.List[int] { return deque.New[int]() }},
	{name: "dualdeque", list: func() list.List[int] { return dualdeque.New[int]() }},
	{name: "rootish", list: func() list.List[int] { return rootish.New[int]() }},
}

func kindNamed(name string) (kind, bool) {
	for _, k := range kinds {
		if k.name == name {
			return k, true
		}
	}
	return kind{}, false
}

func kindNames() []string {
	r := make([]string, len(kinds))
	for i, k := range kinds {
		r[i] = k.name
	}
	return r
}

// indexed is implemented by queues which also allow access by position.
type indexed interface {
	Len() int
	Get(i int) (int, error)
	Set(i, x int) (int, error)
}

// elements returns the contents of a list or indexed queue.
func elements(c interface{ Len() int }) []int {
	switch c := c.(type) {
	case list.List[int]:
		return list.Elements(c)
	case indexed:
		r := make([]int, 0, c.Len())
		for i := range c.Len() {
			x, err := c.Get(i)
			if err != nil {
				panic(err)
			}
			r = append(r, x)
		}
		return r
	default:
		return nil
	}
}

// copies returns the number of elements c has moved, if it counts them.
func copies(c any) int {
	if c, ok := c.(interface{ Copies() int }); ok {
		return c.Copies()
	}
	return 0
}

// capacity returns the number of slots c has allocated, if it reports it.
// Lists that don't report capacity give -1.
func capacity(c any) int {
	if c, ok := c.(interface{ Cap() int }); ok {
		return c.Cap()
	}
	return -1
}
