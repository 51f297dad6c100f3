// Copyright © 2024 The MNL authors

package token

import (
	"io"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerEOF(t *testing.T) {
	s := NewScanner("test", strings.NewReader("xy"))
	assert.False(t, s.EOF())
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	assert.Equal(t, "xy", s.Text())
	assert.Equal(t, 'y', s.Rune())
	assert.Equal(t, io.EOF, s.ScanRune())
	assert.True(t, s.EOF())
	assert.NoError(t, s.Err())
	assert.False(t, s.Accept(func(rune) bool { return true }))
}

func TestScannerInvalidUTF8(t *testing.T) {
	s := NewScanner("test", strings.NewReader("a\xffb"))
	require.True(t, s.AcceptRune('a'))
	_, ok := s.Peek()
	assert.False(t, ok)
	assert.False(t, s.EOF())
	if assert.Error(t, s.Err()) {
		assert.Contains(t, s.Err().Error(), "invalid utf-8")
	}
	assert.Error(t, s.ScanRune())
}

func TestScannerLocations(t *testing.T) {
	s := NewScanner("test", strings.NewReader("ab cd\n  ef"))
	var tokens []*Token
	for !s.EOF() {
		if s.AcceptSeqSpace() > 0 {
			s.Ignore()
			continue
		}
		s.AcceptSeq(func(c rune) bool { return !unicode.IsSpace(c) })
		tokens = append(tokens, s.EmitToken(SYMBOL))
	}
	require.Len(t, tokens, 3)
	expect := []struct {
		text string
		loc  string
		pos  int
	}{
		{"ab", "test:1:1", 0},
		{"cd", "test:1:4", 3},
		{"ef", "test:2:3", 8},
	}
	for i, e := range expect {
		assert.Equal(t, e.text, tokens[i].Text)
		assert.Equal(t, e.loc, tokens[i].Source.String())
		assert.Equal(t, e.pos, tokens[i].Source.Pos)
	}
}

func TestScannerAcceptSeq(t *testing.T) {
	s := NewScanner("", strings.NewReader("xxxxy"))
	assert.Equal(t, 4, s.AcceptSeq(func(c rune) bool { return c == 'x' }))
	assert.False(t, s.AcceptRune('x'))
	assert.True(t, s.AcceptRune('y'))
	tok := s.EmitToken(SYMBOL)
	assert.Equal(t, "xxxxy", tok.Text)
	assert.Equal(t, "", s.Text())
	assert.Equal(t, 5, s.Loc().Pos)
}
