package main_test

import (
	"context"
	_ "embed"
	"runtime"
	"slices"
	"strings"
	"testing"

	main "github.com/zephyrtronium/ods"
)

//go:embed example.toml
var exampleToml string

func eqcase[T comparable](t *testing.T, name string, val T, eq T) {
	t.Helper()
	if val != eq {
		t.Errorf("wrong %s: want %#v, got %#v", name, eq, val)
	}
}

func TestExampleConfig(t *testing.T) {
	t.Setenv("ODS_LISTEN", "localhost")
	cfg, md, err := main.Load(context.Background(), strings.NewReader(exampleToml))
	if err != nil {
		t.Fatalf("failed to load example.toml: %v", err)
	}

	eqcase(t, "Workload.Seed", cfg.Workload.Seed, 1)
	eqcase(t, "Workload.Ops", cfg.Workload.Ops, 10000)
	eqcase(t, "Workload.Workers", cfg.Workload.Workers, 4)
	eqcase(t, "Workload.Shared", cfg.Workload.Shared, false)
	eqcase(t, "Workload.Weights.Add", cfg.Workload.Weights.Add, 5)
	eqcase(t, "Workload.Weights.Remove", cfg.Workload.Weights.Remove, 4)
	eqcase(t, "Workload.Weights.Get", cfg.Workload.Weights.Get, 2)
	eqcase(t, "Workload.Weights.Set", cfg.Workload.Weights.Set, 2)
	eqcase(t, "HTTP.Listen", cfg.HTTP.Listen, "localhost:4959")
	kinds := []string{"arraystack", "faststack", "arrayqueue", "randomqueue", "arraydeque", "dualdeque", "rootish"}
	if !slices.Equal(cfg.Workload.Kinds, kinds) {
		t.Errorf("wrong Workload.Kinds: want %q, got %q", kinds, cfg.Workload.Kinds)
	}
	if !md.IsDefined("http", "listen") {
		t.Errorf("http.listen not defined")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg, _, err := main.Load(context.Background(), strings.NewReader(""))
	if err != nil {
		t.Fatalf("failed to load empty config: %v", err)
	}
	eqcase(t, "Workload.Seed", cfg.Workload.Seed, 0)
	eqcase(t, "Workload.Ops", cfg.Workload.Ops, 10000)
	eqcase(t, "Workload.Workers", cfg.Workload.Workers, runtime.GOMAXPROCS(0))
	eqcase(t, "Workload.Weights", cfg.Workload.Weights, main.Weights{Add: 5, Remove: 4, Get: 2, Set: 2})
	eqcase(t, "HTTP.Listen", cfg.HTTP.Listen, ":4959")
	eqcase(t, "len(Workload.Kinds)", len(cfg.Workload.Kinds), 7)
}

func TestBadConfig(t *testing.T) {
	cases := []struct {
		name string
		toml string
	}{
		{"syntax", `[workload`},
		{"unknown-key", "[workload]\nsides = 3"},
		{"unknown-kind", "[workload]\nkinds = [\"linkedlist\"]"},
		{"negative-weight", "[workload.weights]\nadd = -1"},
		{"zero-weights", "[workload.weights]\nadd = 0"},
		{"negative-ops", "[workload]\nops = -1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := main.Load(context.Background(), strings.NewReader(c.toml))
			if err == nil {
				t.Error("no error")
			}
		})
	}
}
