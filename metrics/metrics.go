package metrics

import "github.com/prometheus/client_golang/prometheus"

type Observer interface {
	Observe(val float64, labels ...string)

	// for now we will tightly couple to the prometheus collector type
	// the go otel metrics sdk also has a prometheus adapter that implements this interface.
	prometheus.Collector
}

// Metrics is the set of observers a workload reports to.
// Unless noted, each is labeled by container kind.
type Metrics struct {
	// Ops counts operations, labeled by kind and op.
	Ops Observer
	// Mismatches counts operations whose results disagreed with the model,
	// labeled by kind and op.
	Mismatches Observer
	// Copies counts elements moved by resizing or rebalancing.
	Copies Observer
	// Resizes counts changes in capacity.
	Resizes Observer
	// Length records the length of each container at the end of a run.
	Length Observer
	// OpLatency records the duration of batches of operations in seconds,
	// labeled by kind.
	OpLatency Observer
	// Runs counts completed workload runs. It is unlabeled.
	Runs Observer
}

func (m Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Ops,
		m.Mismatches,
		m.Copies,
		m.Resizes,
		m.Length,
		m.OpLatency,
		m.Runs,
	}
}
