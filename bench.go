package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// counter is a single counter value read back from a registry.
type counter struct {
	Name   string
	Labels map[string]string
	Value  float64
}

func (c counter) attrs() []any {
	r := make([]any, 0, 2+len(c.Labels))
	r = append(r, slog.String("metric", c.Name), slog.Float64("value", c.Value))
	for k, v := range c.Labels {
		r = append(r, slog.String(k, v))
	}
	return r
}

// counters gathers every counter from g.
func counters(g prometheus.Gatherer) ([]counter, error) {
	mfs, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("couldn't gather metrics: %w", err)
	}
	var r []counter
	for _, mf := range mfs {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range mf.GetMetric() {
			c := counter{Name: mf.GetName(), Value: m.GetCounter().GetValue()}
			if lp := m.GetLabel(); len(lp) != 0 {
				c.Labels = make(map[string]string, len(lp))
				for _, p := range lp {
					c.Labels[p.GetName()] = p.GetValue()
				}
			}
			r = append(r, c)
		}
	}
	return r, nil
}
