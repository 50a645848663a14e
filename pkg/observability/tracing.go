package observability

import (
	"context"

	"github.com/aretw0/statesync/pkg/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/aretw0/statesync"

type spanKey struct {
	layer   int
	kind    domain.Kind
	machine bool
}

// Tracer records one span per activation.
// Like the machine it observes, it is not safe for concurrent use.
type Tracer struct {
	tracer trace.Tracer
	open   map[spanKey]trace.Span
}

// NewTracer creates a Tracer from tp. A nil tp uses the global provider.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{
		tracer: tp.Tracer(tracerName),
		open:   make(map[spanKey]trace.Span),
	}
}

func keyOf(e *domain.StateEvent) spanKey {
	return spanKey{
		layer:   e.Layer,
		kind:    e.Kind,
		machine: e.Type == domain.EventMachineEnter || e.Type == domain.EventMachineExit,
	}
}

// Hooks returns lifecycle hooks that start and end activation spans.
func (t *Tracer) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEnter: func(e *domain.StateEvent) {
			name := "state.activation"
			if e.Type == domain.EventMachineEnter {
				name = "machine.activation"
			}
			_, span := t.tracer.Start(context.Background(), name,
				trace.WithAttributes(
					attribute.Int("statesync.layer", e.Layer),
					attribute.String("statesync.kind", e.Kind.String()),
				),
			)
			t.open[keyOf(e)] = span
		},
		OnExit: func(e *domain.StateEvent) {
			key := keyOf(e)
			span, ok := t.open[key]
			if !ok {
				return
			}
			span.SetAttributes(
				attribute.Int64("statesync.frames", int64(e.Frames)),
				attribute.Float64("statesync.seconds", e.Seconds),
			)
			span.End()
			delete(t.open, key)
		},
	}
}

// Open returns the number of activations with an unfinished span.
func (t *Tracer) Open() int {
	return len(t.open)
}
