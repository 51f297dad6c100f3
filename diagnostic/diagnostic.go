// Copyright © 2024 The MNL authors

// Package diagnostic renders read failures as annotated source snippets for
// CLI output.
package diagnostic

import (
	"errors"

	"github.com/mnl-lang/mnl/literal"
	"github.com/mnl-lang/mnl/parser/reader"
	"github.com/mnl-lang/mnl/parser/token"
	"github.com/mnl-lang/mnl/pool"
	"github.com/mnl-lang/mnl/source"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = auto-detect from source)
	Label  string // text shown under the underline
}

// Diagnostic is a single error, warning, or note with optional source
// annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	Notes    []string
}

// FromError describes err.  Read errors and located errors get a source span;
// any other error becomes a bare message.
func FromError(err error) Diagnostic {
	d := Diagnostic{Severity: SeverityError, Message: err.Error()}
	var rerr *reader.Error
	if errors.As(err, &rerr) {
		d.Message = rerr.Kind.String() + ": " + rerr.Msg
		if span, ok := spanAt(rerr.Source, rerr.Text); ok {
			span.Label = label(rerr)
			d.Spans = append(d.Spans, span)
		}
		d.Notes = notes(rerr)
		return d
	}
	var lerr *token.LocationError
	if errors.As(err, &lerr) {
		d.Message = lerr.Err.Error()
		if span, ok := spanAt(lerr.Source, ""); ok {
			d.Spans = append(d.Spans, span)
		}
		if errors.Is(err, source.ErrOpenString) {
			d.Notes = append(d.Notes, "string literals must be closed on the line they start")
		}
	}
	return d
}

func spanAt(loc *token.Location, text string) (Span, bool) {
	if loc == nil || loc.Line == 0 {
		return Span{}, false
	}
	span := Span{File: loc.File, Line: loc.Line, Col: loc.Col}
	if loc.Path != "" {
		span.File = loc.Path
	}
	if n := len([]rune(text)); n > 1 && loc.Col > 0 {
		span.EndCol = loc.Col + n - 1
	}
	return span, true
}

func label(err *reader.Error) string {
	switch {
	case errors.Is(err, reader.ErrUnclosed):
		return "this list is never closed"
	case errors.Is(err, reader.ErrUnbalanced):
		return "no list is open here"
	case errors.Is(err, reader.ErrDot):
		return "misplaced dot"
	case errors.Is(err, reader.ErrDepth):
		return "nested too deeply"
	}
	switch err.Kind {
	case reader.LiteralError:
		return "malformed literal"
	case reader.LexicalError:
		return "unrecognized input"
	case reader.AllocationError:
		return "allocation refused"
	}
	return ""
}

func notes(err *reader.Error) []string {
	var lim *pool.LimitError
	switch {
	case errors.Is(err, literal.ErrSyntax):
		return []string{
			"integers are decimal, octal when written with a leading 0, or " +
				"hexadecimal when written with a leading #; an explicit + sign " +
				"is not accepted on integers",
		}
	case errors.Is(err, reader.ErrDot):
		return []string{"a dot must sit between the last two elements of a list, as in (a b . c)"}
	case errors.As(err, &lim):
		return []string{"raise the node limit with --pool-limit"}
	}
	return nil
}
