// Copyright © 2024 The MNL authors

// Package readtest runs tables of source texts through a parser and checks
// the forms or errors they produce.
package readtest

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/mnl-lang/mnl/diagnostic"
	"github.com/mnl-lang/mnl/parser"
	"github.com/mnl-lang/mnl/parser/reader"
)

// Case is a single read.  When neither Kind nor Err is set the read must
// succeed and produce Forms, otherwise it must fail with a matching error.
type Case struct {
	Name   string
	Source string
	Forms  []string
	Kind   reader.ErrorKind
	// Err, when non-nil, must match the error with errors.Is.
	Err error
}

// Runner reads test cases.
type Runner struct {
	// Parser reads each case.  When Parser is nil a default parser is used.
	Parser *parser.Parser
}

func (r *Runner) parser() *parser.Parser {
	if r.Parser == nil {
		return parser.New()
	}
	return r.Parser
}

// Run runs each case as a subtest of t.
func (r *Runner) Run(t *testing.T, cases []Case) {
	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			r.RunCase(t, tc)
		})
	}
}

// RunCase reads tc.Source and reports any mismatch as a test error.
func (r *Runner) RunCase(t testing.TB, tc Case) {
	t.Helper()
	tree, err := r.parser().ReadString(tc.Name, tc.Source)
	if tc.Kind == 0 && tc.Err == nil {
		if err != nil {
			r.ReadError(t, tc.Name, tc.Source, err)
			return
		}
		defer tree.Release()
		got := tree.Forms()
		if len(got) != len(tc.Forms) {
			t.Errorf("read %d forms, expected %d: %v", len(got), len(tc.Forms), got)
			return
		}
		for i := range got {
			if got[i].String() != tc.Forms[i] {
				t.Errorf("form %d: got %s, expected %s", i, got[i], tc.Forms[i])
			}
		}
		return
	}
	if err == nil {
		tree.Release()
		t.Errorf("read succeeded, expected %v", tc.Kind)
		return
	}
	if tc.Kind != 0 && !reader.IsKind(err, tc.Kind) {
		t.Errorf("error kind mismatch, expected %v: %v", tc.Kind, err)
	}
	if tc.Err != nil && !errors.Is(err, tc.Err) {
		t.Errorf("error %v does not match %v", err, tc.Err)
	}
}

// ReadError logs a rendered diagnostic for err, read from src under name,
// and fails t.
func (r *Runner) ReadError(t testing.TB, name, src string, err error) {
	t.Helper()
	log := NewLogger(t)
	defer log.Flush()
	rend := &diagnostic.Renderer{
		Color:   diagnostic.ColorNever,
		Sources: map[string]string{name: src},
	}
	if ioerr := rend.RenderError(log, err); ioerr != nil {
		t.Errorf("io error: %v", ioerr)
	}
	t.Error(err)
}

// BenchmarkRead returns a benchmark that reads the file at path with the
// parser returned by p.
func BenchmarkRead(path string, p func() *parser.Parser) func(*testing.B) {
	return func(b *testing.B) {
		buf, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		b.SetBytes(int64(len(buf)))
		for i := 0; i < b.N; i++ {
			tree, err := p().Read(path, bytes.NewReader(buf))
			if err != nil {
				b.Fatalf("Read failure: %v", err)
			}
			tree.Release()
		}
	}
}
