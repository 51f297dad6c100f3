// Copyright © 2024 The MNL authors

package tracing

import (
	"context"
	"errors"

	"github.com/mnl-lang/mnl/parser/reader"
	"github.com/mnl-lang/mnl/stack"
	"github.com/mnl-lang/mnl/value"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

type tracerKey struct{}

// WithTracerName returns a context that selects the tracer used by
// annotators created from it.  The default tracer name is "mnl".
func WithTracerName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, tracerKey{}, name)
}

var _ reader.Profiler = &otelAnnotator{}

type otelAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    trace.Span
	contexts       *stack.Stack[context.Context]
}

// NewOpenTelemetryAnnotator returns a profiler that opens an OpenTelemetry
// span for every list, parented by the span in parentContext.
func NewOpenTelemetryAnnotator(parentContext context.Context, opts ...Option) reader.Profiler {
	p := &otelAnnotator{
		currentContext: parentContext,
		contexts:       stack.New[context.Context](),
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *otelAnnotator) Enable() error {
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opentelemetry")
	}
	return p.profiler.Enable()
}

// Complete ends any spans left open.
func (p *otelAnnotator) Complete() error {
	for p.contexts.Len() > 0 {
		p.pop()
	}
	return nil
}

func contextTracer(ctx context.Context) trace.Tracer {
	name, ok := ctx.Value(tracerKey{}).(string)
	if !ok {
		name = "mnl"
	}
	return otel.GetTracerProvider().Tracer(name)
}

func (p *otelAnnotator) Start(l *value.List) {
	if !p.enter() {
		return
	}
	p.contexts.Push(p.currentContext)
	p.currentContext, p.currentSpan = contextTracer(p.currentContext).Start(p.currentContext, spanName(l))
	file, line, col := sourceOf(l)
	p.currentSpan.SetAttributes(
		semconv.CodeFilepath(file),
		semconv.CodeLineNumber(line),
		semconv.CodeColumn(col),
		attribute.Bool("mnl.quoted", l.Quoted),
	)
}

func (p *otelAnnotator) End(l *value.List) {
	if !p.leave() || p.contexts.Len() == 0 {
		return
	}
	p.currentSpan.SetAttributes(attribute.Int("mnl.length", l.Len()))
	p.pop()
}

func (p *otelAnnotator) pop() {
	p.currentSpan.End()
	ctx, err := p.contexts.Pop()
	if err != nil {
		return
	}
	p.currentContext = ctx
	p.currentSpan = trace.SpanFromContext(p.currentContext)
}
