// main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/Feralthedogg/novum-contract/pkg/config"
	"github.com/Feralthedogg/novum-contract/pkg/contract"
	"github.com/Feralthedogg/novum-contract/pkg/effect"
	"github.com/Feralthedogg/novum-contract/pkg/logging"
	"github.com/Feralthedogg/novum-contract/pkg/predicate"
	"github.com/Feralthedogg/novum-contract/pkg/state"
	"github.com/Feralthedogg/novum-contract/pkg/tracing"
)

type options struct {
	configPath string
	disable    bool
	watch      bool

	// spanExporter replaces the OTLP exporter when tracing is enabled.
	spanExporter sdktrace.SpanExporter
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "contract-demo",
		Short:        "Run guarded functions against their contracts",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a contracts YAML file")
	cmd.Flags().BoolVar(&opts.disable, "disable", false, "disable contract checking")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "keep running and follow changes to --config")
	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sw := state.Default
	cfg.Apply(sw)
	if opts.disable {
		sw.Disable()
	}

	effects := []effect.Effect{effect.NewLogEffect(logging.Component(logger, "contract"))}
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		me, err := effect.NewMetricsEffect(effect.MetricsConfig{
			Namespace: cfg.Metrics.Namespace,
			Subsystem: cfg.Metrics.Subsystem,
		}, registry)
		if err != nil {
			return err
		}
		effects = append(effects, me)
	}
	if cfg.Tracing.Enabled {
		var tracingOpts []tracing.Option
		if opts.spanExporter != nil {
			tracingOpts = append(tracingOpts, tracing.WithExporter(opts.spanExporter))
		}
		provider, err := tracing.New(ctx, cfg.Tracing, tracingOpts...)
		if err != nil {
			return err
		}
		defer func() {
			if err := provider.Shutdown(context.Background()); err != nil {
				logger.Warn("Tracer shutdown failed", zap.Error(err))
			}
		}()
		effects = append(effects, effect.NewTraceEffect(provider.Tracer()))
	}
	observer := effect.NewObserver(logger, effects...)

	for _, s := range scenarios(sw, observer) {
		fmt.Fprintf(out, "%-40s %s\n", s.name, describe(s.call))
	}

	if registry != nil {
		families, err := registry.Gather()
		if err != nil {
			return fmt.Errorf("failed to gather metrics: %w", err)
		}
		encoder := expfmt.NewEncoder(out, expfmt.NewFormat(expfmt.TypeTextPlain))
		for _, mf := range families {
			if err := encoder.Encode(mf); err != nil {
				return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
			}
		}
	}

	if opts.watch && opts.configPath != "" {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		return newWatcher(opts, sw, logger).Watch(ctx)
	}
	return nil
}

// newWatcher follows --config; --disable holds checking off across reloads.
func newWatcher(opts *options, sw *state.Switch, logger *zap.Logger) *config.Watcher {
	w := config.NewWatcher(opts.configPath, sw, logger)
	if opts.disable {
		w.Hold(false)
	}
	return w
}

type scenario struct {
	name string
	call func() int
}

func scenarios(sw *state.Switch, observer contract.Observer) []scenario {
	add := func(lhs, rhs int) int { return lhs + rhs }
	positive := func(p contract.Pair[int, int]) bool { return predicate.AllPositive(p.First, p.Second) }

	kept := contract.Wrap2(add, contract.Contract[contract.Pair[int, int], int]{
		Pre:  positive,
		Post: predicate.Equal(30),
	}, contract.WithName("add"), contract.WithSwitch(sw), contract.WithObserver(observer))

	postOnly := contract.Wrap2(add, contract.Contract[contract.Pair[int, int], int]{
		Post: predicate.Equal(30),
	}, contract.WithName("add"), contract.WithSwitch(sw), contract.WithObserver(observer))

	flag := false
	touching := contract.Wrap2(func(lhs, rhs int) int {
		flag = true
		return lhs + rhs
	}, contract.Contract[contract.Pair[int, int], int]{
		Invariant: func() bool { return !flag },
	}, contract.WithName("addAndFlag"), contract.WithSwitch(sw), contract.WithObserver(observer))

	return []scenario{
		{"add(10, 20) with pre+post", func() int { return kept(10, 20) }},
		{"add(20, -10) with pre+post", func() int { return kept(20, -10) }},
		{"add(20, 20) with post", func() int { return postOnly(20, 20) }},
		{"addAndFlag(20, 20) with invariant", func() int {
			flag = false
			return touching(20, 20)
		}},
		{"add(-10, -20) with pre+post", func() int { return kept(-10, -20) }},
	}
}

// describe runs call and reports either its result or the violated clause.
func describe(call func() int) (desc string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if v, ok := contract.AsViolation(r); ok {
			desc = "violation: " + v.Kind.String()
			return
		}
		panic(r)
	}()
	return fmt.Sprintf("= %d", call())
}
