// pkg/effect/metrics.go

package effect

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Feralthedogg/novum-contract/pkg/contract"
)

// MetricsConfig names the violation metrics.
type MetricsConfig struct {
	Namespace string
	Subsystem string
}

// MetricsEffect counts violations.
//
// Metrics:
//   - <namespace>_<subsystem>_violations_total: violations by function and clause
type MetricsEffect struct {
	violations *prometheus.CounterVec
}

// NewMetricsEffect creates the counters and registers them with reg. A
// collector that is already registered under the same name is reused.
func NewMetricsEffect(cfg MetricsConfig, reg prometheus.Registerer) (*MetricsEffect, error) {
	violations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "violations_total",
			Help:      "Total contract violations by function and clause",
		},
		[]string{"function", "clause"},
	)

	if reg != nil {
		if err := reg.Register(violations); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, fmt.Errorf("failed to register violation metrics: %w", err)
			}
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, fmt.Errorf("violation metrics registered with a different type: %w", err)
			}
			violations = existing
		}
	}

	return &MetricsEffect{violations: violations}, nil
}

func (me *MetricsEffect) Handle(v *contract.Violation) error {
	me.violations.WithLabelValues(v.Function, v.Kind.String()).Inc()
	return nil
}

// Collector exposes the underlying counter.
func (me *MetricsEffect) Collector() *prometheus.CounterVec {
	return me.violations
}
