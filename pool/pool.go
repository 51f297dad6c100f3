// Copyright © 2024 The MNL authors

// Package pool allocates and releases the nodes of a parsed tree.
package pool

import (
	"errors"
	"fmt"

	"github.com/mnl-lang/mnl/array"
	"github.com/mnl-lang/mnl/value"
)

// Pool is an allocate/release service for nodes.  Release must tolerate
// being called more than once for the same node.
type Pool interface {
	Allocate(kind value.Kind) (value.Node, error)
	Release(n value.Node)
}

// ErrInvalidKind is returned when allocating a node of an unknown kind.
var ErrInvalidKind = errors.New("invalid node kind")

// LimitError indicates that an allocation would exceed the arena's live node
// limit.  Nothing is allocated.
type LimitError struct {
	Kind  value.Kind
	Limit int
}

func (lim *LimitError) Error() string {
	return fmt.Sprintf("node limit exceeded by %v allocation: limit %d", lim.Kind, lim.Limit)
}

// Option configures an Arena.
type Option func(*Arena)

// WithLimit bounds the number of live nodes in an arena.  Zero means
// unbounded.
func WithLimit(n int) Option {
	return func(a *Arena) {
		a.limit = n
	}
}

// Arena is a Pool that indexes every node it allocates by handle.  All nodes
// of an arena are torn down together by Reset.  An Arena is not safe for
// concurrent use.
type Arena struct {
	nodes []value.Node // nodes[h-1] is the node with handle h
	free  *array.Array[value.Handle]
	live  int
	limit int
}

var _ Pool = (*Arena)(nil)

// NewArena returns an empty arena.
func NewArena(opts ...Option) *Arena {
	a := &Arena{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate returns a new empty node of the given kind.
func (a *Arena) Allocate(kind value.Kind) (value.Node, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, uint(kind))
	}
	if a.limit > 0 && a.live >= a.limit {
		return nil, &LimitError{Kind: kind, Limit: a.limit}
	}
	var h value.Handle
	if n := a.free.Len(); n > 0 {
		h = a.free.At(n - 1)
		err := a.free.Remove(n-1, nil)
		if err != nil {
			return nil, err
		}
	} else {
		a.nodes = append(a.nodes, nil)
		h = value.Handle(len(a.nodes))
	}
	node := value.New(kind, h)
	a.nodes[h-1] = node
	a.live++
	return node, nil
}

// Release returns n and, for lists, all of its descendants to the arena.
// Nodes which are not live in a are ignored.
func (a *Arena) Release(n value.Node) {
	if !a.owns(n) {
		return
	}
	h := n.Handle()
	a.nodes[h-1] = nil
	a.live--
	if l, ok := n.(*value.List); ok {
		l.Cells.Destroy(a.Release)
		l.Cells = nil
	}
	free, err := array.Push(a.free, h)
	if err == nil {
		a.free = free
	}
}

func (a *Arena) owns(n value.Node) bool {
	if n == nil {
		return false
	}
	h := n.Handle()
	return h != 0 && int(h) <= len(a.nodes) && a.nodes[h-1] == n
}

// Get returns the live node with handle h.
func (a *Arena) Get(h value.Handle) (value.Node, bool) {
	if h == 0 || int(h) > len(a.nodes) {
		return nil, false
	}
	n := a.nodes[h-1]
	return n, n != nil
}

// List returns the live list with handle h.
func (a *Arena) List(h value.Handle) (*value.List, bool) {
	n, ok := a.Get(h)
	if !ok {
		return nil, false
	}
	l, ok := n.(*value.List)
	return l, ok
}

// Live returns the number of allocated nodes that have not been released.
func (a *Arena) Live() int {
	return a.live
}

// Reset releases every node in the arena at once.
func (a *Arena) Reset() {
	for i, n := range a.nodes {
		if l, ok := n.(*value.List); ok {
			l.Cells.Destroy(nil)
			l.Cells = nil
		}
		a.nodes[i] = nil
	}
	a.nodes = a.nodes[:0]
	a.free.Destroy(nil)
	a.free = nil
	a.live = 0
}
