package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/ods/metrics"
)

var app = cli.Command{
	Name:  "ods",
	Usage: "Exercise array-backed lists and queues",

	Flags: []cli.Flag{
		&flagLog,
		&flagLogFormat,
	},
	Commands: []*cli.Command{
		{
			Name:      "demo",
			Usage:     "Print the result of each step of a short script on each container",
			ArgsUsage: "[kinds...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Usage: "Output format, either text or json",
					Value: "text",
					Action: func(ctx context.Context, cmd *cli.Command, s string) error {
						switch s {
						case "text", "json":
							return nil
						default:
							return errors.New("unknown output format")
						}
					},
				},
			},
			Action: cliDemo,
		},
		{
			Name:    "bench",
			Aliases: []string{"check"},
			Usage:   "Run a randomized workload against each container and check the results",
			Flags: []cli.Flag{
				&flagConfig,
			},
			Action: cliBench,
		},
		{
			Name:  "soak",
			Usage: "Run workloads until interrupted while serving metrics",
			Flags: []cli.Flag{
				&flagConfig,
			},
			Action: cliSoak,
		},
	},

	Authors: []any{
		"Branden J Brown  @zephyrtronium",
	},
	Copyright: "Copyright 2024 Branden J Brown",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		stop()
	}()
	err := app.Run(ctx, os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func cliDemo(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	names := cmd.Args().Slice()
	if len(names) == 0 {
		names = kindNames()
	}
	return demo(os.Stdout, cmd.String("format"), names)
}

func cliBench(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	r, err := os.Open(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("couldn't open config file: %w", err)
	}
	cfg, _, err := Load(ctx, r)
	if err != nil {
		return fmt.Errorf("couldn't load config: %w", err)
	}
	r.Close()

	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.Collectors()...)
	log := slog.With(slog.Any("run", uuid.New()))
	log.InfoContext(ctx, "bench",
		slog.Uint64("seed", cfg.Workload.Seed),
		slog.Int("ops", cfg.Workload.Ops),
		slog.Int("workers", cfg.Workload.Workers),
		slog.Bool("shared", cfg.Workload.Shared),
	)
	for _, name := range cfg.Workload.Kinds {
		k, _ := kindNamed(name)
		res, err := runWorkload(ctx, cfg.Workload, k, m)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "result",
			slog.String("kind", res.Kind),
			slog.Int("ops", res.Ops),
			slog.Int("copies", res.Copies),
			slog.Float64("copies_per_op", res.CopiesPerOp()),
			slog.Int("resizes", res.Resizes),
			slog.Int("len", res.Len),
			slog.Duration("time", res.Time),
		)
	}
	cs, err := counters(reg)
	if err != nil {
		return err
	}
	for _, c := range cs {
		log.InfoContext(ctx, "counter", c.attrs()...)
	}
	return nil
}

func cliSoak(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	r, err := os.Open(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("couldn't open config file: %w", err)
	}
	cfg, _, err := Load(ctx, r)
	if err != nil {
		return fmt.Errorf("couldn't load config: %w", err)
	}
	r.Close()

	m := newMetrics()
	log := slog.With(slog.Any("run", uuid.New()))
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return serve(ctx, cfg.HTTP.Listen, http.NewServeMux(), m.Collectors())
	})
	group.Go(func() error {
		return soak(ctx, log, cfg.Workload, m)
	})
	err = group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// soak runs w against each of its kinds repeatedly, with a new seed on each
// iteration, until ctx is done or a run fails.
func soak(ctx context.Context, log *slog.Logger, w Workload, m *metrics.Metrics) error {
	for {
		for _, name := range w.Kinds {
			k, _ := kindNamed(name)
			res, err := runWorkload(ctx, w, k, m)
			if err != nil {
				return err
			}
			log.DebugContext(ctx, "result",
				slog.String("kind", res.Kind),
				slog.Uint64("seed", w.Seed),
				slog.Int("copies", res.Copies),
				slog.Duration("time", res.Time),
			)
		}
		m.Runs.Observe(1)
		log.InfoContext(ctx, "soak iteration", slog.Uint64("seed", w.Seed))
		w.Seed++
	}
}

var (
	flagConfig = cli.StringFlag{
		Name:     "config",
		Required: true,
		Usage:    "TOML config file",
		Action: func(ctx context.Context, cmd *cli.Command, s string) error {
			i, err := os.Stat(s)
			if err != nil {
				return err
			}
			if !i.Mode().IsRegular() {
				return errors.New("config must be a regular file")
			}
			return nil
		},
	}

	flagLog = cli.StringFlag{
		Name:       "log",
		Usage:      "Logging level, one of debug, info, warn, error",
		Value:      "info",
		Persistent: true,
		Action: func(ctx context.Context, c *cli.Command, s string) error {
			var l slog.Level
			return l.UnmarshalText([]byte(s))
		},
	}

	flagLogFormat = cli.StringFlag{
		Name:       "log-format",
		Usage:      "Logging format, either text or json",
		Value:      "text",
		Persistent: true,
		Action: func(ctx context.Context, c *cli.Command, s string) error {
			switch strings.ToLower(s) {
			case "text", "json":
				return nil
			default:
				return errors.New("unknown logging format")
			}
		},
	}
)

func loggerFromFlags(cmd *cli.Command) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(cmd.String("log"))); err != nil {
		panic(err)
	}
	var h slog.Handler
	switch strings.ToLower(cmd.String("log-format")) {
	case "text":
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	case "json":
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	}
	return slog.New(h)
}

// metrics configuration
func newMetrics() *metrics.Metrics {
	return &metrics.Metrics{
		Ops: metrics.NewPromCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ods",
					Subsystem: "workload",
					Name:      "ops",
					Help:      "Number of operations performed on containers.",
				},
				[]string{"kind", "op"},
			),
		),
		Mismatches: metrics.NewPromCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ods",
					Subsystem: "workload",
					Name:      "mismatches",
					Help:      "Number of operations whose results disagreed with the model.",
				},
				[]string{"kind", "op"},
			),
		),
		Copies: metrics.NewPromCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ods",
					Subsystem: "container",
					Name:      "copies",
					Help:      "Number of elements moved while resizing or rebalancing.",
				},
				[]string{"kind"},
			),
		),
		Resizes: metrics.NewPromCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ods",
					Subsystem: "container",
					Name:      "resizes",
					Help:      "Number of capacity changes. Containers that don't report capacity never count.",
				},
				[]string{"kind"},
			),
		),
		Length: metrics.NewPromGaugeVec(
			prometheus.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "ods",
					Subsystem: "container",
					Name:      "length",
					Help:      "Total length of containers at the end of the last run.",
				},
				[]string{"kind"},
			),
		),
		OpLatency: metrics.NewPromObserverVec(
			prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
					Namespace: "ods",
					Subsystem: "workload",
					Name:      "batch_latency",
					Help:      "How long it takes to perform a batch of 256 operations in seconds",
				},
				[]string{"kind"},
			),
		),
		Runs: metrics.NewPromCounter(
			prometheus.NewCounter(
				prometheus.CounterOpts{
					Namespace: "ods",
					Subsystem: "soak",
					Name:      "runs",
					Help:      "Number of completed soak iterations.",
				},
			),
		),
	}
}
