// Copyright © 2024 The MNL authors

// Package tracing reports the list structure of reads to distributed tracing
// systems.  Each list becomes a span nested inside the span of its enclosing
// list.
package tracing

import (
	"fmt"

	"github.com/mnl-lang/mnl/parser/reader"
	"github.com/mnl-lang/mnl/value"
)

// profiler is the state shared by the annotators.
type profiler struct {
	enabled  bool
	maxDepth int
	depth    int
}

var _ reader.Profiler = &profiler{}

// Option configures an annotator.
type Option func(*profiler)

// WithMaxDepth only traces lists nested at most n levels deep.  Zero means
// every list is traced.
func WithMaxDepth(n int) Option {
	return func(p *profiler) {
		p.maxDepth = n
	}
}

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	return nil
}

func (p *profiler) Start(*value.List) {
	p.enter()
}

func (p *profiler) End(*value.List) {
	p.leave()
}

// enter records the opening of a list and reports whether it is traced.
func (p *profiler) enter() bool {
	p.depth++
	return p.traced()
}

// leave records the closing of a list and reports whether it was traced.
func (p *profiler) leave() bool {
	traced := p.traced()
	if p.depth > 0 {
		p.depth--
	}
	return traced
}

func (p *profiler) traced() bool {
	return p.enabled && (p.maxDepth == 0 || p.depth <= p.maxDepth)
}

func spanName(l *value.List) string {
	if l.Quoted {
		return "quoted-list"
	}
	return "list"
}

func sourceOf(l *value.List) (file string, line, col int) {
	loc := l.Loc()
	if loc == nil {
		return "no-source", 0, 0
	}
	file = loc.File
	if loc.Path != "" {
		file = loc.Path
	}
	return file, loc.Line, loc.Col
}
