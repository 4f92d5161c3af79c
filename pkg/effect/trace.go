// pkg/effect/trace.go

package effect

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Feralthedogg/novum-contract/pkg/contract"
)

// TracerName is the instrumentation name used when no tracer is supplied.
const TracerName = "github.com/Feralthedogg/novum-contract"

// TraceEffect records each violation as an errored span.
type TraceEffect struct {
	tracer trace.Tracer
}

// NewTraceEffect uses tracer, or the global provider's tracer when nil.
func NewTraceEffect(tracer trace.Tracer) TraceEffect {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return TraceEffect{tracer: tracer}
}

func (te TraceEffect) Handle(v *contract.Violation) error {
	attrs := []attribute.KeyValue{
		attribute.String("contract.function", v.Function),
		attribute.String("contract.clause", v.Kind.String()),
	}
	if v.Kind != contract.Invariant {
		attrs = append(attrs, attribute.String("contract.args", contract.Render(v.Args)))
	}
	if v.HasResult {
		attrs = append(attrs, attribute.String("contract.result", contract.Render(v.Result)))
	}

	_, span := te.tracer.Start(context.Background(), "contract.violation",
		trace.WithAttributes(attrs...),
	)
	span.RecordError(v)
	span.SetStatus(codes.Error, "contract violation")
	span.End()
	return nil
}
