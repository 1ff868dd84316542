package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Load loads a workload configuration from TOML.
// Absent settings receive defaults, and string settings are expanded with
// environment variables.
func Load(ctx context.Context, r io.Reader) (*Config, *toml.MetaData, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't decode config: %w", err)
	}
	if u := md.Undecoded(); len(u) != 0 {
		return nil, nil, fmt.Errorf("unknown config keys %v", u)
	}
	expandcfg(&cfg, os.Getenv)
	defaultcfg(&cfg, &md)
	for _, k := range cfg.Workload.Kinds {
		if _, ok := kindNamed(k); !ok {
			return nil, nil, fmt.Errorf("unknown container kind %q", k)
		}
	}
	w := cfg.Workload.Weights
	switch {
	case w.Add < 0, w.Remove < 0, w.Get < 0, w.Set < 0:
		return nil, nil, fmt.Errorf("operation weights must be non-negative")
	case w.Add+w.Remove+w.Get+w.Set == 0:
		return nil, nil, fmt.Errorf("operation weights must not all be zero")
	}
	if cfg.Workload.Ops < 0 {
		return nil, nil, fmt.Errorf("negative operation count %d", cfg.Workload.Ops)
	}
	return &cfg, &md, nil
}

// Config is the marshaled structure of the workload configuration.
type Config struct {
	// Workload is the randomized workload run by bench and soak.
	Workload Workload `toml:"workload"`
	// HTTP is the configuration for the metrics server used by soak.
	HTTP HTTP `toml:"http"`
}

// Workload describes a randomized sequence of operations.
type Workload struct {
	// Seed seeds the random operations. Each worker derives its own stream
	// from it.
	Seed uint64 `toml:"seed"`
	// Ops is the total number of operations per container kind.
	Ops int `toml:"ops"`
	// Workers is the number of goroutines running operations concurrently.
	Workers int `toml:"workers"`
	// Shared selects whether workers share one synchronized container per
	// kind rather than each using their own.
	Shared bool `toml:"shared"`
	// Kinds is the list of container kinds to exercise.
	Kinds []string `toml:"kinds"`
	// Weights is the relative frequency of each operation.
	Weights Weights `toml:"weights"`
}

// Weights is the relative frequency of each operation in a workload.
type Weights struct {
	Add    int `toml:"add"`
	Remove int `toml:"remove"`
	Get    int `toml:"get"`
	Set    int `toml:"set"`
}

// HTTP is the configuration of the HTTP server.
type HTTP struct {
	// Listen is the address on which to serve.
	Listen string `toml:"listen"`
}

func expandcfg(cfg *Config, expand func(s string) string) {
	cfg.HTTP.Listen = os.Expand(cfg.HTTP.Listen, expand)
	for i, s := range cfg.Workload.Kinds {
		cfg.Workload.Kinds[i] = os.Expand(s, expand)
	}
}

func defaultcfg(cfg *Config, md *toml.MetaData) {
	if !md.IsDefined("workload", "ops") {
		cfg.Workload.Ops = 10000
	}
	if cfg.Workload.Workers <= 0 {
		cfg.Workload.Workers = runtime.GOMAXPROCS(0)
	}
	if !md.IsDefined("workload", "kinds") {
		cfg.Workload.Kinds = kindNames()
	}
	if !md.IsDefined("workload", "weights") {
		cfg.Workload.Weights = Weights{Add: 5, Remove: 4, Get: 2, Set: 2}
	}
	if cfg.HTTP.Listen == "" {
		cfg.HTTP.Listen = ":4959"
	}
}
