// Copyright © 2024 The MNL authors

// Package astutil provides tree walking utilities for read forms.
package astutil

import (
	"github.com/mnl-lang/mnl/parser/token"
	"github.com/mnl-lang/mnl/value"
)

// Walk calls fn for every node in the tree, depth-first.
// parent is nil for top-level forms.
func Walk(forms []value.Node, fn func(node value.Node, parent *value.List, depth int)) {
	for _, n := range forms {
		walkNode(n, nil, 0, fn)
	}
}

func walkNode(node value.Node, parent *value.List, depth int, fn func(value.Node, *value.List, int)) {
	if node == nil {
		return
	}
	fn(node, parent, depth)
	l, ok := node.(*value.List)
	if !ok {
		return
	}
	for _, child := range l.Items() {
		walkNode(child, l, depth+1, fn)
	}
}

// WalkLists calls fn for every unquoted, non-empty list in the tree.
func WalkLists(forms []value.Node, fn func(l *value.List, depth int)) {
	Walk(forms, func(node value.Node, _ *value.List, depth int) {
		if l, ok := node.(*value.List); ok && !l.Quoted && l.Len() > 0 {
			fn(l, depth)
		}
	})
}

// HeadSymbol returns the name of the symbol at the head of l, or "".
func HeadSymbol(l *value.List) string {
	if l.Len() == 0 {
		return ""
	}
	if sym, ok := l.At(0).(*value.Symbol); ok && !sym.Quoted {
		return sym.Name
	}
	return ""
}

// ArgCount returns the number of elements of l after its head.
func ArgCount(l *value.List) int {
	if l.Len() <= 1 {
		return 0
	}
	return l.Len() - 1
}

// Symbols returns the set of symbol names used anywhere in forms.  Quoted
// symbols are included under their bare name.
func Symbols(forms []value.Node) map[string]bool {
	names := make(map[string]bool)
	Walk(forms, func(node value.Node, _ *value.List, _ int) {
		if sym, ok := node.(*value.Symbol); ok {
			names[sym.Name] = true
		}
	})
	return names
}

// MaxDepth returns the deepest list nesting in forms.  A form without lists
// has depth 0.
func MaxDepth(forms []value.Node) int {
	deepest := 0
	Walk(forms, func(node value.Node, _ *value.List, depth int) {
		if _, ok := node.(*value.List); ok && depth+1 > deepest {
			deepest = depth + 1
		}
	})
	return deepest
}

// SourceOf returns the best source location for a node.
// Prefers the node's own source, falls back to its first child's source.
func SourceOf(n value.Node) *token.Location {
	if loc := n.Loc(); loc != nil && loc.Line > 0 {
		return loc
	}
	if l, ok := n.(*value.List); ok && l.Len() > 0 && l.At(0).Loc() != nil {
		return l.At(0).Loc()
	}
	return n.Loc()
}
