// Copyright © 2024 The MNL authors

package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mnl-lang/mnl/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	tests := []struct {
		text  string
		lines []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\n", []string{"a", ""}},
		{"a\n\nb", []string{"a", "", "b"}},
	}
	for _, test := range tests {
		assert.Equal(t, test.lines, Lines(test.text), "%q", test.text)
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		line   string
		expect string
	}{
		{`(a b) ; comment`, `(a b) `},
		{`; whole line`, ``},
		{`"a;b" ; c`, `"a;b" `},
		{`"a\";b" c`, `"a\";b" c`},
		{`"a\\" ; c`, `"a\\" `},
		{`no comment`, `no comment`},
		{`x ;; y ; z`, `x `},
		{``, ``},
	}
	for _, test := range tests {
		lines, err := StripComments("test", []string{test.line})
		require.NoError(t, err, test.line)
		assert.Equal(t, []string{test.expect}, lines, test.line)
	}
}

func TestStripCommentsOpenString(t *testing.T) {
	lines := []string{`(a "b")`, `(c "d`, `e")`}
	_, err := StripComments("prog.mnl", lines)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOpenString))
	var lerr *token.LocationError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 2, lerr.Source.Line)
	assert.Equal(t, "prog.mnl:2: string literal not closed", err.Error())
}

func TestStrip(t *testing.T) {
	text, err := Strip("test", "(a ; one\n b) ; two\n")
	require.NoError(t, err)
	assert.Equal(t, "(a \n b) \n", text)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.mnl")
	require.NoError(t, os.WriteFile(path, []byte("(1 2)\n"), 0o600))
	text, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "(1 2)\n", text)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.mnl"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
