// Copyright © 2024 The MNL authors

// Package literal converts the text of literal tokens into nodes.
//
// Integers are exact and unbounded.  A leading '#' selects hexadecimal and a
// leading '0' selects octal, so "-302", "-0456" and "-#12e" are the same
// number.  An explicit '+' sign is not accepted on integers.  Reals are
// parsed at RealPrec bits of mantissa and may carry a leading '+'.
//
// Every parser allocates its node from a pool.Pool.  When the text is
// malformed the node is released back to the pool before the error is
// returned.
package literal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mnl-lang/mnl/parser/token"
	"github.com/mnl-lang/mnl/pool"
	"github.com/mnl-lang/mnl/value"
)

// RealPrec is the mantissa precision, in bits, of parsed reals.
const RealPrec = 128

// ErrSyntax matches every *SyntaxError under errors.Is.
var ErrSyntax = errors.New("malformed literal")

// ErrRange is the cause of a real whose exponent cannot be represented.
var ErrRange = errors.New("exponent out of range")

// SyntaxError describes literal text that could not be converted.
type SyntaxError struct {
	Kind value.Kind
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %v literal %q: %v", e.Kind, e.Text, e.Err)
	}
	return fmt.Sprintf("invalid %v literal %q", e.Kind, e.Text)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ParseInteger parses decimal, octal (leading 0) and hexadecimal (leading #)
// integer text with an optional leading '-'.
func ParseInteger(p pool.Pool, text string) (*value.Int, error) {
	n, err := p.Allocate(value.KindInt)
	if err != nil {
		return nil, err
	}
	v := n.(*value.Int)
	neg, digits, base := splitInteger(text)
	if !validDigits(digits, base) {
		p.Release(v)
		return nil, &SyntaxError{Kind: value.KindInt, Text: text}
	}
	if _, ok := v.Value.SetString(digits, base); !ok {
		p.Release(v)
		return nil, &SyntaxError{Kind: value.KindInt, Text: text}
	}
	if neg {
		v.Value.Neg(&v.Value)
	}
	return v, nil
}

func splitInteger(text string) (neg bool, digits string, base int) {
	digits = text
	if strings.HasPrefix(digits, "-") {
		neg = true
		digits = digits[1:]
	}
	switch {
	case strings.HasPrefix(digits, "#"):
		return neg, digits[1:], 16
	case len(digits) > 1 && digits[0] == '0':
		return neg, digits[1:], 8
	}
	return neg, digits, 10
}

// validDigits rejects signs, prefixes and separators that big.Int.SetString
// would otherwise interpret.
func validDigits(digits string, base int) bool {
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digitValue(digits[i]) >= base {
			return false
		}
	}
	return true
}

func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return 1 << 8
}

// ParseReal parses real text: an optional sign, digits with an optional
// fractional part, and an optional exponent.  At least one mantissa digit is
// required.
func ParseReal(p pool.Pool, text string) (*value.Real, error) {
	n, err := p.Allocate(value.KindReal)
	if err != nil {
		return nil, err
	}
	v := n.(*value.Real)
	s := strings.TrimPrefix(text, "+")
	if !isReal(strings.TrimPrefix(s, "-")) || (len(s) < len(text) && strings.HasPrefix(s, "-")) {
		p.Release(v)
		return nil, &SyntaxError{Kind: value.KindReal, Text: text}
	}
	v.Value.SetPrec(RealPrec)
	// The text is well formed here, so Parse only fails on the exponent.
	// An exponent that fits but scales past the float range yields infinity.
	if _, _, err := v.Value.Parse(s, 10); err != nil || v.Value.IsInf() {
		p.Release(v)
		return nil, &SyntaxError{Kind: value.KindReal, Text: text, Err: ErrRange}
	}
	return v, nil
}

func isReal(s string) bool {
	mant := 0
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mant++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mant++
		}
	}
	if mant == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// ParseString parses a double quoted string literal using Go escape rules.
func ParseString(p pool.Pool, text string) (*value.String, error) {
	n, err := p.Allocate(value.KindString)
	if err != nil {
		return nil, err
	}
	v := n.(*value.String)
	if !strings.HasPrefix(text, `"`) {
		p.Release(v)
		return nil, &SyntaxError{Kind: value.KindString, Text: text}
	}
	v.Value, err = strconv.Unquote(text)
	if err != nil {
		p.Release(v)
		return nil, &SyntaxError{Kind: value.KindString, Text: text, Err: err}
	}
	return v, nil
}

// ParseSymbol returns a symbol named by text.  Quoted symbol text carries its
// leading quote, which is removed.
func ParseSymbol(p pool.Pool, text string, quoted bool) (*value.Symbol, error) {
	name := text
	if quoted {
		name = strings.TrimPrefix(text, "'")
	}
	if name == "" {
		return nil, &SyntaxError{Kind: value.KindSymbol, Text: text}
	}
	n, err := p.Allocate(value.KindSymbol)
	if err != nil {
		return nil, err
	}
	v := n.(*value.Symbol)
	v.Name = name
	v.Quoted = quoted
	return v, nil
}

// Parse converts a literal token into a node stamped with the token's
// location.
func Parse(p pool.Pool, tok *token.Token) (value.Node, error) {
	n, err := parse(p, tok)
	if err != nil {
		return nil, err
	}
	n.SetLoc(tok.Source)
	return n, nil
}

func parse(p pool.Pool, tok *token.Token) (value.Node, error) {
	switch tok.Type {
	case token.INT, token.INT_OCTAL, token.INT_HEX:
		n, err := ParseInteger(p, tok.Text)
		if err != nil {
			return nil, err
		}
		return n, nil
	case token.FLOAT:
		n, err := ParseReal(p, tok.Text)
		if err != nil {
			return nil, err
		}
		return n, nil
	case token.STRING:
		n, err := ParseString(p, tok.Text)
		if err != nil {
			return nil, err
		}
		return n, nil
	case token.SYMBOL, token.QUOTED_SYMBOL:
		n, err := ParseSymbol(p, tok.Text, tok.Type == token.QUOTED_SYMBOL)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("%v token is not a literal", tok.Type)
}
