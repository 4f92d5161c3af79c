// pkg/effect/effect.go

package effect

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Feralthedogg/novum-contract/pkg/contract"
)

// Effect is a side effect performed for a contract violation.
type Effect interface {
	Handle(v *contract.Violation) error
}

// EffectFunc adapts a function to Effect.
type EffectFunc func(v *contract.Violation) error

func (f EffectFunc) Handle(v *contract.Violation) error {
	return f(v)
}

// Perform runs e for v.
func Perform(e Effect, v *contract.Violation) error {
	return e.Handle(v)
}

// LogEffect writes each violation to a zap logger at warn level.
type LogEffect struct {
	Logger *zap.Logger
}

// NewLogEffect returns a LogEffect; a nil logger discards output.
func NewLogEffect(logger *zap.Logger) LogEffect {
	if logger == nil {
		logger = zap.NewNop()
	}
	return LogEffect{Logger: logger}
}

func (le LogEffect) Handle(v *contract.Violation) error {
	fields := []zap.Field{
		zap.String("function", v.Function),
		zap.Stringer("clause", v.Kind),
	}
	if v.Kind != contract.Invariant {
		fields = append(fields, zap.String("args", contract.Render(v.Args)))
	}
	if v.HasResult {
		fields = append(fields, zap.String("result", contract.Render(v.Result)))
	}
	le.Logger.Warn("Contract violation", fields...)
	return nil
}

// NewObserver bundles effects into a contract.Observer. Every effect runs even
// if an earlier one fails; failures are logged and never replace the violation.
func NewObserver(logger *zap.Logger, effects ...Effect) contract.Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return contract.ObserverFunc(func(v *contract.Violation) {
		for i, e := range effects {
			if err := Perform(e, v); err != nil {
				logger.Error("Contract effect failed",
					zap.String("function", v.Function),
					zap.String("effect", fmt.Sprintf("%T", e)),
					zap.Int("index", i),
					zap.Error(err),
				)
			}
		}
	})
}
