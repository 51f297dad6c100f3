// Copyright © 2024 The MNL authors

// Package printer renders trees of values as source text or as an indented
// structural dump.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mnl-lang/mnl/value"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
)

// Config holds printing configuration.
type Config struct {
	IndentSize int  // spaces per nesting level (default: 2)
	Width      int  // preferred maximum line width for Format (default: 80)
	Locations  bool // Tree annotates nodes with their source location
}

// DefaultConfig returns the default printing configuration.
func DefaultConfig() *Config {
	return &Config{
		IndentSize: 2,
		Width:      80,
	}
}

// Format writes each form to w in canonical source syntax, one form per line.
// A list that does not fit in the configured width is broken after its first
// element with the remaining elements indented on their own lines.
func Format(w io.Writer, forms []value.Node, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, n := range forms {
		_, err := io.WriteString(w, layout(n, 0, cfg)+"\n")
		if err != nil {
			return err
		}
	}
	return nil
}

func layout(n value.Node, col int, cfg *Config) string {
	flat := n.String()
	l, ok := n.(*value.List)
	if !ok || l.Len() < 2 || cfg.Width <= 0 || col+ansi.PrintableRuneWidth(flat) <= cfg.Width {
		return flat
	}
	open := "("
	if l.Quoted {
		open = "'("
	}
	head := layout(l.At(0), col+len(open), cfg)
	rest := make([]string, 0, l.Len()-1)
	for _, child := range l.Items()[1:] {
		rest = append(rest, layout(child, col+cfg.IndentSize, cfg))
	}
	body := indent.String(strings.Join(rest, "\n"), uint(cfg.IndentSize))
	return open + head + "\n" + body + ")"
}

// Tree writes an indented dump of the structure of each form to w.
func Tree(w io.Writer, forms []value.Node, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, n := range forms {
		_, err := io.WriteString(w, dump(n, cfg)+"\n")
		if err != nil {
			return err
		}
	}
	return nil
}

func dump(n value.Node, cfg *Config) string {
	var line string
	switch n := n.(type) {
	case *value.List:
		kind := "list"
		if n.Quoted {
			kind = "quoted-list"
		}
		line = fmt.Sprintf("%s[%d]", kind, n.Len())
	case *value.Symbol:
		kind := "symbol"
		if n.Quoted {
			kind = "quoted-symbol"
		}
		line = kind + " " + n.Name
	case *value.Dot:
		line = "dot"
	default:
		line = n.Kind().String() + " " + n.String()
	}
	if cfg.Locations && n.Loc() != nil {
		line += " @ " + n.Loc().String()
	}
	l, ok := n.(*value.List)
	if !ok || l.Len() == 0 {
		return line
	}
	children := make([]string, 0, l.Len())
	for _, child := range l.Items() {
		children = append(children, dump(child, cfg))
	}
	return line + "\n" + indent.String(strings.Join(children, "\n"), uint(cfg.IndentSize))
}
