// Copyright © 2024 The MNL authors

package literal

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/mnl-lang/mnl/parser/token"
	"github.com/mnl-lang/mnl/pool"
	"github.com/mnl-lang/mnl/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInteger(t *testing.T) {
	tests := []struct {
		text   string
		expect string // decimal value
	}{
		{"1", "1"},
		{"0", "0"},
		{"-0", "0"},
		{"123", "123"},
		{"-456", "-456"},
		{"#deadbeef", "3735928559"},
		{"#DEADBEEF", "3735928559"},
		{"0700", "448"},
		{"-0456", "-302"},
		{"-#12e", "-302"},
		{"-302", "-302"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
		{"#ffffffffffffffffffffffffffffffff", "340282366920938463463374607431768211455"},
	}
	for _, test := range tests {
		a := pool.NewArena()
		n, err := ParseInteger(a, test.text)
		if !assert.NoError(t, err, test.text) {
			continue
		}
		assert.Equal(t, test.expect, n.Value.String(), test.text)
		assert.Equal(t, 1, a.Live())
	}
}

func TestIntegerBasesAgree(t *testing.T) {
	a := pool.NewArena()
	var nodes []*value.Int
	for _, text := range []string{"-0456", "-#12e", "-302"} {
		n, err := ParseInteger(a, text)
		require.NoError(t, err)
		nodes = append(nodes, n)
	}
	for _, n := range nodes[1:] {
		assert.Equal(t, 0, nodes[0].Value.Cmp(&n.Value))
		assert.True(t, value.Equal(nodes[0], n))
	}
}

func TestParseIntegerInvalid(t *testing.T) {
	for _, text := range []string{"1a", "1u23", "-45.6", "#degaef", "0800", "", "-", "#", "-#", "#-12", "+12", "1_000", "0x10", "- 1"} {
		a := pool.NewArena()
		n, err := ParseInteger(a, text)
		assert.Nil(t, n, "%q", text)
		assert.True(t, errors.Is(err, ErrSyntax), "%q: %v", text, err)
		var serr *SyntaxError
		if assert.ErrorAs(t, err, &serr) {
			assert.Equal(t, value.KindInt, serr.Kind)
			assert.Equal(t, text, serr.Text)
		}
		assert.Equal(t, 0, a.Live(), "%q leaked", text)
	}
}

func TestParseReal(t *testing.T) {
	tests := []struct {
		text   string
		expect string
	}{
		{"1.", "1"},
		{".1", "0.1"},
		{"+.1", "0.1"},
		{"-1.", "-1"},
		{"1.1", "1.1"},
		{"+7.7438e-4", "0.00077438"},
		{"12e3", "12000"},
		{"1.5E+2", "150"},
		{"42", "42"},
	}
	for _, test := range tests {
		a := pool.NewArena()
		n, err := ParseReal(a, test.text)
		if !assert.NoError(t, err, test.text) {
			continue
		}
		assert.Equal(t, uint(RealPrec), n.Value.Prec())
		var expect big.Float
		expect.SetPrec(RealPrec)
		_, _, err = expect.Parse(test.expect, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, expect.Cmp(&n.Value), "%s != %s", test.text, n.Value.Text('g', -1))
	}
}

func TestParseRealPlusStripped(t *testing.T) {
	a := pool.NewArena()
	for _, pair := range [][2]string{{"+.1", ".1"}, {"+7.7438e-4", "7.7438e-4"}, {"+1.", "1."}} {
		x, err := ParseReal(a, pair[0])
		require.NoError(t, err)
		y, err := ParseReal(a, pair[1])
		require.NoError(t, err)
		assert.True(t, value.Equal(x, y), pair[0])
	}
}

func TestParseRealInvalid(t *testing.T) {
	for _, text := range []string{"", ".", "+", "-", "e5", ".e5", "1e", "1e+", "1.2.3", "inf", "Inf", "+-1.", "--1.", "1.5x", "0x1p4", "1_0.0"} {
		a := pool.NewArena()
		n, err := ParseReal(a, text)
		assert.Nil(t, n, "%q", text)
		assert.True(t, errors.Is(err, ErrSyntax), "%q: %v", text, err)
		assert.Equal(t, 0, a.Live(), "%q leaked", text)
	}
}

func TestParseString(t *testing.T) {
	a := pool.NewArena()
	n, err := ParseString(a, `"a\tb\"cé"`)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\"cé", n.Value)

	for _, text := range []string{`abc`, `"abc`, `"\q"`, "`raw`", `'c'`} {
		n, err := ParseString(a, text)
		assert.Nil(t, n)
		assert.True(t, errors.Is(err, ErrSyntax), text)
	}
	assert.Equal(t, 1, a.Live())
}

func TestParseSymbol(t *testing.T) {
	a := pool.NewArena()
	n, err := ParseSymbol(a, "lambda", false)
	require.NoError(t, err)
	assert.Equal(t, "lambda", n.Name)
	assert.False(t, n.Quoted)

	n, err = ParseSymbol(a, "'x", true)
	require.NoError(t, err)
	assert.Equal(t, "x", n.Name)
	assert.True(t, n.Quoted)
	assert.Equal(t, "'x", n.String())

	_, err = ParseSymbol(a, "'", true)
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.Equal(t, 2, a.Live())
}

func TestPoolRefusal(t *testing.T) {
	a := pool.NewArena(pool.WithLimit(1))
	_, err := ParseInteger(a, "1")
	require.NoError(t, err)
	_, err = ParseInteger(a, "2")
	var lim *pool.LimitError
	assert.ErrorAs(t, err, &lim)
	assert.False(t, errors.Is(err, ErrSyntax))
	_, err = ParseReal(a, "2.")
	assert.ErrorAs(t, err, &lim)
}

func TestParse(t *testing.T) {
	loc := &token.Location{File: "t", Line: 3, Col: 4}
	tests := []struct {
		tok  *token.Token
		text string
	}{
		{&token.Token{Type: token.INT, Text: "12"}, "12"},
		{&token.Token{Type: token.INT_OCTAL, Text: "012"}, "10"},
		{&token.Token{Type: token.INT_HEX, Text: "#12"}, "18"},
		{&token.Token{Type: token.FLOAT, Text: "1.5"}, "1.5"},
		{&token.Token{Type: token.STRING, Text: `"x"`}, `"x"`},
		{&token.Token{Type: token.SYMBOL, Text: "foo"}, "foo"},
		{&token.Token{Type: token.QUOTED_SYMBOL, Text: "'foo"}, "'foo"},
	}
	a := pool.NewArena()
	for _, test := range tests {
		test.tok.Source = loc
		n, err := Parse(a, test.tok)
		require.NoError(t, err, test.tok.Text)
		assert.Equal(t, test.text, n.String())
		assert.Same(t, loc, n.Loc())
	}

	n, err := Parse(a, &token.Token{Type: token.INT, Text: "1a"})
	assert.Nil(t, n)
	assert.True(t, errors.Is(err, ErrSyntax))
	_, err = Parse(a, &token.Token{Type: token.PAREN_L, Text: "("})
	assert.Error(t, err)
	assert.Equal(t, len(tests), a.Live())
}

func TestSyntaxErrorMessage(t *testing.T) {
	err := &SyntaxError{Kind: value.KindInt, Text: "1a"}
	assert.Equal(t, `invalid int literal "1a"`, err.Error())
}

func TestParseRealExponentRange(t *testing.T) {
	for _, text := range []string{"1e99999999999999999999", "-1.5e-99999999999999999999", "1e9999999999", "1e1000000000"} {
		a := pool.NewArena()
		n, err := ParseReal(a, text)
		assert.Nil(t, n, text)
		assert.ErrorIs(t, err, ErrSyntax, text)
		assert.ErrorIs(t, err, ErrRange, text)
		assert.Equal(t, fmt.Sprintf("invalid real literal %q: exponent out of range", text), err.Error())
		assert.Equal(t, 0, a.Live(), "%q leaked", text)
	}
}
