// Copyright © 2024 The MNL authors

package reader

import (
	"github.com/mnl-lang/mnl/parser/token"
)

// TokenStream is an arbitrary sequence of tokens.  Typically a TokenStream
// will be a *lexer.Lexer but other implementations are useful to feed the
// reader from a REPL or from pre-scanned input.
type TokenStream interface {
	// ReadToken returns a set of tokens from an input source.  When no more
	// tokens can be generated ReadToken returns a token with type token.EOF.
	// ReadToken never returns an empty slice.
	ReadToken() []*token.Token
}

// TokenGenerator implements TokenStream.  The function is called any time the
// reader wants a token.
type TokenGenerator func() []*token.Token

// ReadToken implements TokenStream.
func (fn TokenGenerator) ReadToken() []*token.Token {
	return fn()
}

// TokenSlice returns a TokenStream producing toks in order followed by EOF.
func TokenSlice(toks []*token.Token) TokenStream {
	pos := &token.Location{Pos: -1}
	return TokenGenerator(func() []*token.Token {
		if len(toks) == 0 {
			return []*token.Token{{Type: token.EOF, Source: pos}}
		}
		tok := toks[0]
		toks = toks[1:]
		if tok.Source != nil {
			pos = tok.Source
		}
		return []*token.Token{tok}
	})
}

// TokenChannel returns a TokenStream that returns tokens received from c.
// When c is closed the stream produces EOF.
func TokenChannel(c <-chan []*token.Token) TokenStream {
	pos := &token.Location{Pos: -1}
	return TokenGenerator(func() []*token.Token {
		tok, ok := <-c
		if !ok || len(tok) == 0 {
			return []*token.Token{{Type: token.EOF, Source: pos}}
		}
		pos = tok[len(tok)-1].Source
		return tok
	})
}
