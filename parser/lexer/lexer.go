// Copyright © 2024 The MNL authors

// Package lexer implements the default mnl token scanner.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mnl-lang/mnl/parser/token"
)

// LexFn is a lexer state function.
type LexFn func(*Lexer) []*token.Token

// Lexer produces tokens from a token.Scanner.  After emitting an EOF or ERROR
// token a Lexer keeps returning EOF.
type Lexer struct {
	scanner *token.Scanner
	lex     LexFn
}

// New returns a Lexer reading from s.
func New(s *token.Scanner) *Lexer {
	return &Lexer{
		scanner: s,
		lex:     (*Lexer).readToken,
	}
}

// ReadToken returns the next token in the stream.
func (lex *Lexer) ReadToken() []*token.Token {
	return lex.lex(lex)
}

func (lex *Lexer) readToken() []*token.Token {
	if lex.scanner.AcceptSeqSpace() > 0 {
		return lex.emitText(token.SPACE)
	}
	if !lex.scanner.Accept(func(c rune) bool { return true }) {
		if err := lex.scanner.Err(); err != nil {
			return lex.emitError(err)
		}
		return lex.emit(token.EOF, "")
	}
	switch lex.scanner.Rune() {
	case '(':
		return lex.emitText(token.PAREN_L)
	case ')':
		return lex.emitText(token.PAREN_R)
	case ';':
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.emitText(token.COMMENT)
	case '"':
		return lex.readString()
	case '\'':
		if lex.scanner.AcceptRune('(') {
			return lex.emitText(token.QUOTE_PAREN_L)
		}
		if lex.scanner.AcceptSeq(isWordRune) == 0 {
			return lex.emitText(token.INVALID)
		}
		return lex.emitText(token.QUOTED_SYMBOL)
	default:
		lex.scanner.AcceptSeq(isWordRune)
		return lex.emitText(Classify(lex.scanner.Text()))
	}
}

func (lex *Lexer) readString() []*token.Token {
	for {
		if !lex.scanner.Accept(func(c rune) bool { return true }) {
			if err := lex.scanner.Err(); err != nil {
				return lex.emitError(err)
			}
			return lex.errorf("unterminated string literal")
		}
		switch lex.scanner.Rune() {
		case '"':
			return lex.emitText(token.STRING)
		case '\n':
			return lex.errorf("unterminated string literal")
		case '\\':
			// escapes are checked when the literal is parsed
			if !lex.scanner.Accept(func(c rune) bool { return c != '\n' }) {
				return lex.errorf("unterminated string literal")
			}
		}
	}
}

func (lex *Lexer) done() []*token.Token {
	return lex.emit(token.EOF, "")
}

func (lex *Lexer) emit(typ token.Type, text string) []*token.Token {
	tok := []*token.Token{{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitText(typ token.Type) []*token.Token {
	return []*token.Token{lex.scanner.EmitToken(typ)}
}

func (lex *Lexer) emitError(err error) []*token.Token {
	lex.lex = (*Lexer).done
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) []*token.Token {
	return lex.emitError(fmt.Errorf(format, v...))
}

func isWordRune(c rune) bool {
	if unicode.IsSpace(c) {
		return false
	}
	return !strings.ContainsRune(delimiters, c)
}

const delimiters = `()";`

// Classify returns the token type of a bare word, a run of text containing no
// whitespace or delimiter.  Numeric-looking words are classified by shape
// alone; their digits are checked by the literal parsers.
func Classify(word string) token.Type {
	switch {
	case word == "":
		return token.INVALID
	case word == ".":
		return token.DOT
	case strings.HasPrefix(word, "#"), strings.HasPrefix(word, "-#"):
		return token.INT_HEX
	case isRealShape(word):
		return token.FLOAT
	}
	digits := word
	switch word[0] {
	case '-', '+':
		digits = word[1:]
	}
	if digits == "" || !isDigit(rune(digits[0])) {
		return token.SYMBOL
	}
	if digits[0] == '0' && len(digits) > 1 {
		return token.INT_OCTAL
	}
	return token.INT
}

// isRealShape reports whether word looks like [+-]digits[.digits][e[+-]digits]
// with at least one digit in the mantissa and either a point or an exponent.
func isRealShape(word string) bool {
	s := word
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	intDigits := countDigits(s)
	s = s[intDigits:]
	var point bool
	var fracDigits int
	if s != "" && s[0] == '.' {
		point = true
		s = s[1:]
		fracDigits = countDigits(s)
		s = s[fracDigits:]
	}
	if intDigits+fracDigits == 0 {
		return false
	}
	var exp bool
	if s != "" && (s[0] == 'e' || s[0] == 'E') {
		exp = true
		s = s[1:]
		if s != "" && (s[0] == '+' || s[0] == '-') {
			s = s[1:]
		}
		n := countDigits(s)
		if n == 0 {
			return false
		}
		s = s[n:]
	}
	return s == "" && (point || exp)
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && isDigit(rune(s[n])) {
		n++
	}
	return n
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
