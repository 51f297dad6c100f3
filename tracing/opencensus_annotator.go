// Copyright © 2024 The MNL authors

package tracing

import (
	"context"
	"errors"

	"github.com/mnl-lang/mnl/parser/reader"
	"github.com/mnl-lang/mnl/stack"
	"github.com/mnl-lang/mnl/value"
	"go.opencensus.io/trace"
)

var _ reader.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       *stack.Stack[context.Context]
}

// NewOpenCensusAnnotator returns a profiler that opens an OpenCensus span for
// every list, parented by the span in parentContext.
func NewOpenCensusAnnotator(parentContext context.Context, opts ...Option) reader.Profiler {
	p := &ocAnnotator{
		currentContext: parentContext,
		contexts:       stack.New[context.Context](),
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) Enable() error {
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

// Complete ends any spans left open.
func (p *ocAnnotator) Complete() error {
	for p.contexts.Len() > 0 {
		p.pop()
	}
	return nil
}

func (p *ocAnnotator) Start(l *value.List) {
	if !p.enter() {
		return
	}
	p.contexts.Push(p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, spanName(l))
	p.currentSpan.AddAttributes(trace.BoolAttribute("quoted", l.Quoted))
}

func (p *ocAnnotator) End(l *value.List) {
	if !p.leave() || p.contexts.Len() == 0 {
		return
	}
	file, line, col := sourceOf(l)
	p.currentSpan.Annotate([]trace.Attribute{
		trace.StringAttribute("file", file),
		trace.Int64Attribute("line", int64(line)),
		trace.Int64Attribute("column", int64(col)),
		trace.Int64Attribute("length", int64(l.Len())),
	}, "source")
	p.pop()
}

func (p *ocAnnotator) pop() {
	p.currentSpan.End()
	ctx, err := p.contexts.Pop()
	if err != nil {
		return
	}
	p.currentContext = ctx
	p.currentSpan = trace.FromContext(p.currentContext)
}
