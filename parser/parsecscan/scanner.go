// Copyright © 2024 The MNL authors

// Package parsecscan provides an alternative mnl token scanner built from
// regular expression combinators.
//
//	token    := '(' | "'(" | ')' | <comment> | <string> | <qsymbol> | <word>
//	comment  := ;[^\n]*
//	string   := "([^"\\\n]|\\.)*"
//	qsymbol  := '[^<space>()";]+
//	word     := [^<space>()";'][^<space>()";]*
//
// Words are classified exactly as the default lexer classifies them, and
// <space> is the set of runes for which unicode.IsSpace holds.  White space
// is skipped, so no SPACE tokens are produced.
package parsecscan

import (
	"io"
	"sort"
	"unicode/utf8"

	"github.com/mnl-lang/mnl/parser/lexer"
	"github.com/mnl-lang/mnl/parser/token"
	parsec "github.com/prataprc/goparsec"
)

const (
	termQuoteParen   = "QUOTE_PAREN_L"
	termParenL       = "PAREN_L"
	termParenR       = "PAREN_R"
	termComment      = "COMMENT"
	termString       = "STRING"
	termUnterminated = "UNTERMINATED"
	termQuotedSymbol = "QUOTED_SYMBOL"
	termWord         = "WORD"
	termInvalid      = "INVALID"
)

// space matches the runes accepted by unicode.IsSpace: ASCII white space,
// U+0085 and the Unicode separator categories.
const space = `\t\n\v\f\r \x{85}\p{Z}`

// Scanner implements a token stream over an in-memory source text.
type Scanner struct {
	file   string
	text   []byte
	lines  []int // byte offset of the start of each line
	s      parsec.Scanner
	parser parsec.Parser
	err    error
	done   bool
}

// New reads all of r and returns a Scanner over its contents.  A read error
// is reported as an ERROR token.
func New(file string, r io.Reader) *Scanner {
	text, err := io.ReadAll(r)
	sc := NewBytes(file, text)
	sc.err = err
	return sc
}

// NewBytes returns a Scanner over text.
func NewBytes(file string, text []byte) *Scanner {
	lines := []int{0}
	for i, b := range text {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Scanner{
		file:   file,
		text:   text,
		lines:  lines,
		s:      parsec.NewScanner(text).SetWSPattern(`^[` + space + `]+`),
		parser: newTokenParser(),
	}
}

func newTokenParser() parsec.Parser {
	quoteParen := parsec.Atom("'(", termQuoteParen)
	openP := parsec.Atom("(", termParenL)
	closeP := parsec.Atom(")", termParenR)
	comment := parsec.Token(`;[^\n]*`, termComment)
	str := parsec.Token(`"(?:[^"\\\n]|\\.)*"`, termString)
	unterminated := parsec.Token(`"[^\n]*`, termUnterminated)
	qsymbol := parsec.Token(`'[^`+space+`()";]+`, termQuotedSymbol)
	word := parsec.Token(`[^`+space+`()";'][^`+space+`()";]*`, termWord)
	invalid := parsec.Token(`[^`+space+`]`, termInvalid)
	return parsec.OrdChoice(first,
		quoteParen,
		openP,
		closeP,
		comment,
		str,
		unterminated,
		qsymbol,
		word,
		invalid, // invalid comes last because it swallows anything
	)
}

func first(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// ReadToken implements the reader's token stream.  After EOF or an ERROR
// token ReadToken keeps returning EOF.
func (sc *Scanner) ReadToken() []*token.Token {
	if sc.done {
		return sc.emit(token.EOF, "", len(sc.text))
	}
	if sc.err != nil {
		sc.done = true
		return sc.emit(token.ERROR, sc.err.Error(), 0)
	}
	node, next := sc.parser(sc.s)
	term := terminal(node)
	if term == nil {
		_, rest := sc.s.SkipWS()
		sc.done = true
		if rest.Endof() {
			return sc.emit(token.EOF, "", len(sc.text))
		}
		return sc.emit(token.ERROR, "unexpected source text", rest.GetCursor())
	}
	sc.s = next
	switch term.GetName() {
	case termQuoteParen:
		return sc.emit(token.QUOTE_PAREN_L, term.GetValue(), term.Position)
	case termParenL:
		return sc.emit(token.PAREN_L, term.GetValue(), term.Position)
	case termParenR:
		return sc.emit(token.PAREN_R, term.GetValue(), term.Position)
	case termComment:
		return sc.emit(token.COMMENT, term.GetValue(), term.Position)
	case termString:
		return sc.emit(token.STRING, term.GetValue(), term.Position)
	case termUnterminated:
		sc.done = true
		return sc.emit(token.ERROR, "unterminated string literal", term.Position)
	case termQuotedSymbol:
		return sc.emit(token.QUOTED_SYMBOL, term.GetValue(), term.Position)
	case termWord:
		return sc.emit(lexer.Classify(term.GetValue()), term.GetValue(), term.Position)
	}
	return sc.emit(token.INVALID, term.GetValue(), term.Position)
}

// terminal unwraps the node produced by a combinator into its terminal.
func terminal(node parsec.ParsecNode) *parsec.Terminal {
	switch node := node.(type) {
	case *parsec.Terminal:
		return node
	case []parsec.ParsecNode:
		if len(node) > 0 {
			return terminal(node[0])
		}
	}
	return nil
}

func (sc *Scanner) emit(typ token.Type, text string, pos int) []*token.Token {
	return []*token.Token{{
		Type:   typ,
		Text:   text,
		Source: sc.location(pos),
	}}
}

func (sc *Scanner) location(pos int) *token.Location {
	if pos > len(sc.text) {
		pos = len(sc.text)
	}
	line := sort.Search(len(sc.lines), func(i int) bool { return sc.lines[i] > pos })
	start := sc.lines[line-1]
	return &token.Location{
		File: sc.file,
		Pos:  pos,
		Line: line,
		Col:  utf8.RuneCount(sc.text[start:pos]) + 1,
	}
}
