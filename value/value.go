// Copyright © 2024 The MNL authors

// Package value defines the in-memory tree produced by the mnl reader.
//
// A Node is one of *Int, *Real, *String, *Symbol, *Dot or *List.  The set is
// closed; code inspecting nodes uses a type switch.  Nodes are normally
// allocated by a pool, which stamps each one with a Handle.
package value

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/mnl-lang/mnl/array"
	"github.com/mnl-lang/mnl/parser/token"
)

// Kind enumerates node variants.
type Kind uint

// Kind values.  KindInvalid is never produced by a pool.
const (
	KindInvalid Kind = iota
	KindInt
	KindReal
	KindString
	KindSymbol
	KindDot
	KindList
	numKinds
)

var kindStrings = [numKinds]string{
	KindInvalid: "invalid",
	KindInt:     "int",
	KindReal:    "real",
	KindString:  "string",
	KindSymbol:  "symbol",
	KindDot:     "dot",
	KindList:    "list",
}

func (k Kind) String() string {
	if k >= numKinds {
		return kindStrings[KindInvalid]
	}
	return kindStrings[k]
}

// Valid reports whether k names a node variant.
func (k Kind) Valid() bool {
	return KindInvalid < k && k < numKinds
}

// Handle identifies a node within the pool that allocated it.  The zero Handle
// refers to no node.
type Handle uint32

// Header is the state common to every node.
type Header struct {
	ID     Handle
	Source *token.Location
}

// Handle returns the pool handle of the node.
func (h *Header) Handle() Handle { return h.ID }

// Loc returns the location of the token that produced the node.
func (h *Header) Loc() *token.Location { return h.Source }

// SetLoc records the location of the token that produced the node.
func (h *Header) SetLoc(loc *token.Location) { h.Source = loc }

// Node is a parsed value.
type Node interface {
	Kind() Kind
	Handle() Handle
	Loc() *token.Location
	SetLoc(loc *token.Location)
	String() string
	node()
}

// New returns an empty node of the given kind bound to handle h.  New returns
// nil when kind is not valid.
func New(kind Kind, h Handle) Node {
	hdr := Header{ID: h}
	switch kind {
	case KindInt:
		return &Int{Header: hdr}
	case KindReal:
		return &Real{Header: hdr}
	case KindString:
		return &String{Header: hdr}
	case KindSymbol:
		return &Symbol{Header: hdr}
	case KindDot:
		return &Dot{Header: hdr}
	case KindList:
		return &List{Header: hdr}
	}
	return nil
}

// Int is an exact integer of unbounded magnitude.
type Int struct {
	Header
	Value big.Int
}

func (*Int) Kind() Kind { return KindInt }
func (*Int) node() {}

func (n *Int) String() string {
	return n.Value.String()
}

// Real is an arbitrary precision real number.
type Real struct {
	Header
	Value big.Float
}

func (*Real) Kind() Kind { return KindReal }
func (*Real) node() {}

// String returns the shortest decimal text that identifies n at its
// precision.  The text always marks the number as real.
func (n *Real) String() string {
	s := n.Value.Text('g', -1)
	if strings.ContainsAny(s, ".eInf") {
		return s
	}
	return s + ".0"
}

// String is a string literal.
type String struct {
	Header
	Value string
}

func (*String) Kind() Kind { return KindString }
func (*String) node() {}

func (n *String) String() string {
	return strconv.Quote(n.Value)
}

// Symbol is a bare or quoted symbol.
type Symbol struct {
	Header
	Name   string
	Quoted bool
}

func (*Symbol) Kind() Kind { return KindSymbol }
func (*Symbol) node() {}

func (n *Symbol) String() string {
	if n.Quoted {
		return "'" + n.Name
	}
	return n.Name
}

// Dot marks the position of a dotted pair separator inside a list.
type Dot struct {
	Header
}

func (*Dot) Kind() Kind { return KindDot }
func (*Dot) node() {}
func (*Dot) String() string { return "." }

// List is an ordered sequence of nodes.  A quoted list was written with a
// leading quote.  Cells is nil for an empty list.
type List struct {
	Header
	Quoted bool
	Cells  *array.Array[Node]
}

func (*List) Kind() Kind { return KindList }
func (*List) node() {}

// Len returns the number of children in n.
func (n *List) Len() int {
	return n.Cells.Len()
}

// At returns the i-th child of n.
func (n *List) At(i int) Node {
	return n.Cells.At(i)
}

// Items returns a copy of the children of n.
func (n *List) Items() []Node {
	return n.Cells.Items()
}

// Append adds child to the end of n.  A nil child, including a nil pointer
// of one of the node types, is rejected with array.ErrNilItem.
func (n *List) Append(child Node) error {
	if IsNil(child) {
		return array.ErrNilItem
	}
	cells, err := array.Push(n.Cells, child)
	if err != nil {
		return err
	}
	n.Cells = cells
	return nil
}

func (n *List) String() string {
	var buf strings.Builder
	if n.Quoted {
		buf.WriteByte('\'')
	}
	buf.WriteByte('(')
	n.Cells.Each(func(i int, child Node) bool {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(child.String())
		return true
	})
	buf.WriteByte(')')
	return buf.String()
}

// IsNil reports whether n is nil or holds a nil node pointer.
func IsNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Int:
		return n == nil
	case *Real:
		return n == nil
	case *String:
		return n == nil
	case *Symbol:
		return n == nil
	case *Dot:
		return n == nil
	case *List:
		return n == nil
	}
	return false
}

// Equal reports whether a and b are structurally equal.  Numbers compare by
// value, so integers written in different bases are equal.  Handles and
// source locations are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Int:
		b, ok := b.(*Int)
		return ok && a.Value.Cmp(&b.Value) == 0
	case *Real:
		b, ok := b.(*Real)
		return ok && a.Value.Cmp(&b.Value) == 0
	case *String:
		b, ok := b.(*String)
		return ok && a.Value == b.Value
	case *Symbol:
		b, ok := b.(*Symbol)
		return ok && a.Name == b.Name && a.Quoted == b.Quoted
	case *Dot:
		_, ok := b.(*Dot)
		return ok
	case *List:
		b, ok := b.(*List)
		if !ok || a.Quoted != b.Quoted || a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !Equal(a.At(i), b.At(i)) {
				return false
			}
		}
		return true
	}
	return false
}
