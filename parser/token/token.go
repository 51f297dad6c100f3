// Copyright © 2024 The MNL authors

package token

import "fmt"

// Token is one classified unit of source text.  Tokens are immutable once a
// lexer has emitted them.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	switch tok.Type {
	case EOF, SPACE:
		return tok.Type.String()
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Text)
}

// Type discriminates tokens.
type Type uint

// Type constants produced by the mnl lexers.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Structure
	DOT
	PAREN_L
	QUOTE_PAREN_L
	PAREN_R
	SPACE
	COMMENT

	// Literals
	INT
	INT_OCTAL
	INT_HEX
	FLOAT
	STRING
	SYMBOL
	QUOTED_SYMBOL

	numTokenTypes
)

var typeStrings = [numTokenTypes]string{
	INVALID:       "invalid",
	ERROR:         "error",
	EOF:           "EOF",
	DOT:           ".",
	PAREN_L:       "(",
	QUOTE_PAREN_L: "'(",
	PAREN_R:       ")",
	SPACE:         "space",
	COMMENT:       ";",
	INT:           "int",
	INT_OCTAL:     "octal",
	INT_HEX:       "hex",
	FLOAT:         "real",
	STRING:        "string",
	SYMBOL:        "symbol",
	QUOTED_SYMBOL: "quoted-symbol",
}

func (typ Type) String() string {
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// IsLiteral reports whether tokens of type typ produce a leaf value.
func (typ Type) IsLiteral() bool {
	return INT <= typ && typ < numTokenTypes
}

// Location is a position in a named source stream.
type Location struct {
	File string // a name representing the source stream
	Path string // a physical location which may differ from File
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc == nil:
		return "<unknown>"
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// LocationError attaches a source location to an error.
type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
