// Copyright © 2024 The MNL authors

package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mnl-lang/mnl/parser/reader"
	"github.com/mnl-lang/mnl/parser/token"
	"github.com/mnl-lang/mnl/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forms(t *testing.T, tree *reader.Tree) []string {
	t.Helper()
	var s []string
	for _, n := range tree.Forms() {
		s = append(s, n.String())
	}
	return s
}

func TestParseScanner(t *testing.T) {
	s, err := ParseScanner("parsec")
	require.NoError(t, err)
	assert.Equal(t, ScannerParsec, s)
	_, err = ParseScanner("yacc")
	assert.Error(t, err)
}

func TestScannersAgree(t *testing.T) {
	src := "(define (sq x) (* x x)) ; square\n'(1 . #ff) \"s\" -0456 .5"
	expect := []string{`(define (sq x) (* x x))`, `'(1 . 255)`, `"s"`, `-302`, `0.5`}
	for _, s := range Scanners {
		for _, strip := range []bool{false, true} {
			p := New(WithScanner(s), WithStripComments(strip))
			tree, err := p.ReadString("test", src)
			require.NoError(t, err, "%s strip=%t", s, strip)
			assert.Equal(t, expect, forms(t, tree), "%s strip=%t", s, strip)
			tree.Release()
		}
	}
}

func TestStripCommentsError(t *testing.T) {
	p := New(WithStripComments(true))
	_, err := p.ReadString("test", "(a \"b\n c\")")
	assert.True(t, errors.Is(err, source.ErrOpenString))
	var lerr *token.LocationError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 1, lerr.Source.Line)
}

func TestReaderOptions(t *testing.T) {
	p := New(WithReaderOptions(reader.WithDotValidation(false), reader.WithMaxDepth(1)))
	tree, err := p.ReadString("test", `(. a) .`)
	require.NoError(t, err)
	assert.Equal(t, []string{`(. a)`, `.`}, forms(t, tree))

	_, err = p.ReadString("test", `((a))`)
	assert.True(t, errors.Is(err, reader.ErrDepth))
}

func TestUnknownScanner(t *testing.T) {
	_, err := New(WithScanner("yacc")).ReadString("test", "a")
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.mnl")
	require.NoError(t, os.WriteFile(path, []byte("(1 2)\n(3"), 0o600))
	_, err := New().ReadFile(path)
	var rerr *reader.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, path+":2:1", rerr.Source.String())

	_, err = New().ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
