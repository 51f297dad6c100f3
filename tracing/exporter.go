// Copyright © 2024 The MNL authors

package tracing

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	octrace "go.opencensus.io/trace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SpanWriter exports finished spans as text, one span per line.  It serves
// as both an OpenTelemetry span exporter and an OpenCensus exporter.
type SpanWriter struct {
	mu sync.Mutex
	w  io.Writer
}

var (
	_ sdktrace.SpanExporter = (*SpanWriter)(nil)
	_ octrace.Exporter      = (*SpanWriter)(nil)
)

// NewSpanWriter returns a SpanWriter that writes to w.
func NewSpanWriter(w io.Writer) *SpanWriter {
	return &SpanWriter{w: w}
}

func (sw *SpanWriter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	for _, s := range spans {
		if err := ctx.Err(); err != nil {
			return err
		}
		attrs := make([]string, 0, len(s.Attributes()))
		for _, kv := range s.Attributes() {
			attrs = append(attrs, fmt.Sprintf("%s=%s", kv.Key, kv.Value.Emit()))
		}
		parent := "-"
		if s.Parent().IsValid() {
			parent = s.Parent().SpanID().String()
		}
		err := sw.writeLine(s.Name(), s.SpanContext().SpanID().String(), parent, attrs)
		if err != nil {
			return err
		}
	}
	return nil
}

func (sw *SpanWriter) Shutdown(context.Context) error {
	return nil
}

func (sw *SpanWriter) ExportSpan(sd *octrace.SpanData) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	attrs := make([]string, 0, len(sd.Attributes))
	for k, v := range sd.Attributes {
		attrs = append(attrs, fmt.Sprintf("%s=%v", k, v))
	}
	for _, a := range sd.Annotations {
		for k, v := range a.Attributes {
			attrs = append(attrs, fmt.Sprintf("%s.%s=%v", a.Message, k, v))
		}
	}
	sort.Strings(attrs)
	parent := "-"
	if sd.ParentSpanID != (octrace.SpanID{}) {
		parent = sd.ParentSpanID.String()
	}
	_ = sw.writeLine(sd.Name, sd.SpanID.String(), parent, attrs)
}

func (sw *SpanWriter) writeLine(name, id, parent string, attrs []string) error {
	line := fmt.Sprintf("span %s id=%s parent=%s", name, id, parent)
	if len(attrs) > 0 {
		line += " " + strings.Join(attrs, " ")
	}
	_, err := io.WriteString(sw.w, line+"\n")
	return err
}
