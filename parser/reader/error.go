// Copyright © 2024 The MNL authors

package reader

import (
	"errors"
	"fmt"

	"github.com/mnl-lang/mnl/parser/token"
)

// ErrorKind classifies read failures.
type ErrorKind uint

// ErrorKind values.  Every kind is fatal to the read that produced it.  The
// zero ErrorKind names no kind of error.
const (
	// LexicalError is an INVALID or ERROR token from the scanner.
	LexicalError ErrorKind = iota + 1
	// StructuralError is unbalanced or misplaced structure: an unexpected
	// closing delimiter, an unclosed list, a misplaced dot or excessive
	// nesting.
	StructuralError
	// LiteralError is leaf text the literal parsers rejected.
	LiteralError
	// AllocationError is a refusal by the node pool.
	AllocationError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical-error"
	case StructuralError:
		return "structural-error"
	case LiteralError:
		return "literal-error"
	case AllocationError:
		return "allocation-error"
	}
	return fmt.Sprintf("error-kind(%d)", uint(k))
}

// Error is returned by a failed read.
type Error struct {
	Kind   ErrorKind
	Msg    string
	Text   string // raw text of the offending token, if any
	Source *token.Location
	Err    error
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v: %v: %s", err.Source, err.Kind, err.Msg)
}

func (err *Error) Unwrap() error {
	return err.Err
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var rerr *Error
	return errors.As(err, &rerr) && rerr.Kind == kind
}

// IsUnclosed reports whether err was caused by input ending inside a list.
// Interactive callers use it to request more input.
func IsUnclosed(err error) bool {
	var rerr *Error
	return errors.As(err, &rerr) && errors.Is(rerr.Err, ErrUnclosed)
}

var (
	// ErrUnbalanced is the cause of a closing delimiter with no open list.
	ErrUnbalanced = errors.New("unbalanced closing delimiter")
	// ErrUnclosed is the cause of input ending inside a list.
	ErrUnclosed = errors.New("unclosed list")
	// ErrDot is the cause of a misplaced dotted pair marker.
	ErrDot = errors.New("misplaced dot")
	// ErrDepth is the cause of nesting beyond the configured maximum.
	ErrDepth = errors.New("maximum nesting depth exceeded")
)
