// Copyright © 2024 The MNL authors

package token

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// Scanner tracks the line and column of every token it emits.
type Scanner struct {
	file string
	path string
	r    *bufio.Reader

	text  strings.Builder
	c     rune
	pos   int // byte offset of the next rune
	line  int
	col   int
	start Location // position of the first rune of the current token

	err error // first non-EOF error encountered reading input
	eof bool
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	s := &Scanner{
		file: file,
		r:    bufio.NewReader(r),
		line: 1,
		col:  1,
	}
	s.Ignore()
	return s
}

// SetPath associates a physical location (e.g. filesystem path) with s.
func (s *Scanner) SetPath(path string) {
	s.path = path
	s.start.Path = path
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text.Reset()
	s.start = Location{
		File: s.file,
		Path: s.path,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.
func (s *Scanner) Text() string {
	return s.text.String()
}

// Rune returns the last rune scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned.  When EOF, a read error, or an
// invalid utf-8 sequence prevents further scanning Peek returns false and the
// cause is available from Err (or EOF).
func (s *Scanner) Peek() (rune, bool) {
	c, n, err := s.r.ReadRune()
	if err != nil {
		s.fail(err)
		return 0, false
	}
	_ = s.r.UnreadRune()
	if c == utf8.RuneError && n == 1 {
		s.fail(fmt.Errorf("invalid utf-8 sequence in source text at %s", s.Loc()))
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune consumes the next rune into the current token.
func (s *Scanner) ScanRune() error {
	c, ok := s.Peek()
	if !ok {
		if s.err != nil {
			return s.err
		}
		return io.EOF
	}
	n, _ := s.r.Discard(utf8.RuneLen(c))
	s.text.WriteRune(c)
	s.c = c
	s.pos += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

func (s *Scanner) fail(err error) {
	if errors.Is(err, io.EOF) {
		s.eof = true
		return
	}
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first error, other than io.EOF, that stopped the scanner.
func (s *Scanner) Err() error {
	return s.err
}

// EOF reports whether the input stream is exhausted.
func (s *Scanner) EOF() bool {
	if s.eof {
		return true
	}
	s.Peek()
	return s.eof
}

// Accept scans the next rune if fn returns true for it.
func (s *Scanner) Accept(fn func(rune) bool) bool {
	c, ok := s.Peek()
	if !ok || !fn(c) {
		return false
	}
	return s.ScanRune() == nil
}

// AcceptRune scans the next rune if it is c.
func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(x rune) bool { return x == c })
}

// AcceptSeq scans runes while fn returns true and returns the number of runes
// scanned.
func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqSpace() int {
	return s.AcceptSeq(unicode.IsSpace)
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	loc := s.start
	return &loc
}

// Loc returns a Location referencing the current scanner position.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}
