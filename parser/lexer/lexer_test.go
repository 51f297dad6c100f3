// Copyright © 2024 The MNL authors

package lexer

import (
	"strings"
	"testing"

	"github.com/mnl-lang/mnl/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []*token.Token
	}{
		{``, []*token.Token{
			testToken(token.EOF, ""),
		}},
		{`abc`, []*token.Token{
			testToken(token.SYMBOL, "abc"),
			testToken(token.EOF, ""),
		}},
		{`(+ 1 2)`, []*token.Token{
			testToken(token.PAREN_L, "("),
			testToken(token.SYMBOL, "+"),
			testToken(token.SPACE, " "),
			testToken(token.INT, "1"),
			testToken(token.SPACE, " "),
			testToken(token.INT, "2"),
			testToken(token.PAREN_R, ")"),
			testToken(token.EOF, ""),
		}},
		{`'(a . b) 'sym '`, []*token.Token{
			testToken(token.QUOTE_PAREN_L, "'("),
			testToken(token.SYMBOL, "a"),
			testToken(token.SPACE, " "),
			testToken(token.DOT, "."),
			testToken(token.SPACE, " "),
			testToken(token.SYMBOL, "b"),
			testToken(token.PAREN_R, ")"),
			testToken(token.SPACE, " "),
			testToken(token.QUOTED_SYMBOL, "'sym"),
			testToken(token.SPACE, " "),
			testToken(token.INVALID, "'"),
			testToken(token.EOF, ""),
		}},
		{`10 -5 0700 #ff -#12e 1. .1 +7.7e-4 -1.`, []*token.Token{
			testToken(token.INT, "10"),
			testToken(token.SPACE, " "),
			testToken(token.INT, "-5"),
			testToken(token.SPACE, " "),
			testToken(token.INT_OCTAL, "0700"),
			testToken(token.SPACE, " "),
			testToken(token.INT_HEX, "#ff"),
			testToken(token.SPACE, " "),
			testToken(token.INT_HEX, "-#12e"),
			testToken(token.SPACE, " "),
			testToken(token.FLOAT, "1."),
			testToken(token.SPACE, " "),
			testToken(token.FLOAT, ".1"),
			testToken(token.SPACE, " "),
			testToken(token.FLOAT, "+7.7e-4"),
			testToken(token.SPACE, " "),
			testToken(token.FLOAT, "-1."),
			testToken(token.EOF, ""),
		}},
		{"\"a\\\"b\" ; note\n\"\"", []*token.Token{
			testToken(token.STRING, `"a\"b"`),
			testToken(token.SPACE, " "),
			testToken(token.COMMENT, "; note"),
			testToken(token.SPACE, "\n"),
			testToken(token.STRING, `""`),
			testToken(token.EOF, ""),
		}},
		{`"abc`, []*token.Token{
			testToken(token.ERROR, "unterminated string literal"),
			testToken(token.EOF, ""),
		}},
	}
	for i, test := range tests {
		lex := New(token.NewScanner("test", strings.NewReader(test.input)))
		var tokens []*token.Token
		for {
			toks := lex.ReadToken()
			require.Len(t, toks, 1, "test %d", i)
			tok := toks[0]
			tok.Source = nil
			tokens = append(tokens, tok)
			if tok.Type == token.EOF {
				break
			}
			require.Less(t, len(tokens), 100, "test %d: runaway lexer", i)
		}
		assert.Equal(t, test.tokens, tokens, "test %d: %q", i, test.input)
	}
}

func TestLexerLocation(t *testing.T) {
	lex := New(token.NewScanner("test", strings.NewReader("(a\n  b)")))
	var locs []string
	for {
		tok := lex.ReadToken()[0]
		if tok.Type == token.EOF {
			break
		}
		if tok.Type != token.SPACE {
			locs = append(locs, tok.Source.String())
		}
	}
	assert.Equal(t, []string{"test:1:1", "test:1:2", "test:2:3", "test:2:4"}, locs)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		word string
		typ  token.Type
	}{
		{"", token.INVALID},
		{".", token.DOT},
		{"..", token.SYMBOL},
		{"0", token.INT},
		{"-0", token.INT},
		{"1a", token.INT},
		{"1u23", token.INT},
		{"+12", token.INT},
		{"0800", token.INT_OCTAL},
		{"-0456", token.INT_OCTAL},
		{"#deadbeef", token.INT_HEX},
		{"#degaef", token.INT_HEX},
		{"-#12e", token.INT_HEX},
		{"12e3", token.FLOAT},
		{"12e", token.INT},
		{"-45.6", token.FLOAT},
		{"+.1", token.FLOAT},
		{".e1", token.SYMBOL},
		{"-", token.SYMBOL},
		{"+", token.SYMBOL},
		{"lambda", token.SYMBOL},
		{"a.b", token.SYMBOL},
	}
	for _, test := range tests {
		assert.Equal(t, test.typ, Classify(test.word), "%q", test.word)
	}
}

func testToken(typ token.Type, text string) *token.Token {
	return &token.Token{
		Type: typ,
		Text: text,
	}
}
