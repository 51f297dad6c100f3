// Copyright © 2024 The MNL authors

// Package reader builds trees of values from a stream of mnl tokens.
//
// The reader keeps an explicit stack of open lists.  A synthetic root list is
// opened before the first token and holds every top level form.  Reads are
// all or nothing: on any error every node allocated by the read is released
// and no tree is returned.
package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/mnl-lang/mnl/literal"
	"github.com/mnl-lang/mnl/parser/lexer"
	"github.com/mnl-lang/mnl/parser/token"
	"github.com/mnl-lang/mnl/pool"
	"github.com/mnl-lang/mnl/stack"
	"github.com/mnl-lang/mnl/value"
)

type config struct {
	validateDots bool
	maxDepth     int
	poolLimit    int
	profiler     Profiler
}

// Option configures a Reader.
type Option func(*config)

// WithDotValidation controls whether dotted pair markers are checked when
// their list closes.  Validation is on by default.  When it is off dots are
// kept wherever they appear, including at top level.
func WithDotValidation(on bool) Option {
	return func(c *config) {
		c.validateDots = on
	}
}

// WithMaxDepth limits list nesting to n levels.  Zero means unlimited.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

// WithPoolLimit bounds the number of nodes a single read may allocate.  Zero
// means unlimited.
func WithPoolLimit(n int) Option {
	return func(c *config) {
		c.poolLimit = n
	}
}

// WithProfiler reports list boundaries to p while reading.
func WithProfiler(p Profiler) Option {
	return func(c *config) {
		c.profiler = p
	}
}

// Reader reads token streams into trees.  A Reader holds only configuration
// and may be used by multiple goroutines.
type Reader struct {
	cfg config
}

// New returns a Reader configured by opts.
func New(opts ...Option) *Reader {
	r := &Reader{cfg: config{validateDots: true}}
	for _, opt := range opts {
		opt(&r.cfg)
	}
	return r
}

// Tree is the result of a successful read.  Every node in the tree is owned
// by Arena.
type Tree struct {
	Root  *value.List
	Arena *pool.Arena
}

// Forms returns the top level forms of t in source order.
func (t *Tree) Forms() []value.Node {
	return t.Root.Items()
}

// Len returns the number of top level forms in t.
func (t *Tree) Len() int {
	return t.Root.Len()
}

// Release tears down every node of t.  Release is idempotent.
func (t *Tree) Release() {
	t.Arena.Reset()
	t.Root = &value.List{}
}

// ReadSource scans r with the default lexer and reads the resulting tokens.
func (rd *Reader) ReadSource(name string, r io.Reader) (*Tree, error) {
	return rd.Read(lexer.New(token.NewScanner(name, r)))
}

// Read consumes stream up to and including its EOF token.  A stream which
// never produces EOF blocks Read indefinitely.
func (rd *Reader) Read(stream TokenStream) (*Tree, error) {
	return rd.read(pool.NewArena(pool.WithLimit(rd.cfg.poolLimit)), stream)
}

func (rd *Reader) read(arena *pool.Arena, stream TokenStream) (*Tree, error) {
	st := &state{
		cfg:    &rd.cfg,
		arena:  arena,
		frames: stack.New[frame](),
	}
	tree, err := st.run(stream)
	if err != nil {
		st.abort()
		return nil, err
	}
	return tree, nil
}

// frame is an open list.  The root frame has no opening token.
type frame struct {
	list value.Handle
	open *token.Location
}

type state struct {
	cfg    *config
	arena  *pool.Arena
	frames *stack.Stack[frame]
	root   *value.List
}

func (st *state) run(stream TokenStream) (*Tree, error) {
	n, err := st.arena.Allocate(value.KindList)
	if err != nil {
		return nil, st.allocError(err, nil)
	}
	st.root = n.(*value.List)
	st.frames.Push(frame{list: st.root.Handle()})
	for {
		for _, tok := range stream.ReadToken() {
			if tok.Type == token.EOF {
				return st.finish(tok)
			}
			if err := st.step(tok); err != nil {
				return nil, err
			}
		}
	}
}

func (st *state) step(tok *token.Token) error {
	switch tok.Type {
	case token.SPACE, token.COMMENT:
		return nil
	case token.INVALID:
		return &Error{
			Kind:   LexicalError,
			Msg:    fmt.Sprintf("invalid token %q", tok.Text),
			Text:   tok.Text,
			Source: tok.Source,
		}
	case token.ERROR:
		// the text of an ERROR token is a message, not source text
		return &Error{
			Kind:   LexicalError,
			Msg:    tok.Text,
			Source: tok.Source,
		}
	case token.DOT:
		return st.dot(tok)
	case token.PAREN_L, token.QUOTE_PAREN_L:
		return st.open(tok)
	case token.PAREN_R:
		return st.close(tok)
	}
	if tok.Type.IsLiteral() {
		return st.leaf(tok)
	}
	return &Error{
		Kind:   LexicalError,
		Msg:    fmt.Sprintf("unexpected %v token", tok.Type),
		Text:   tok.Text,
		Source: tok.Source,
	}
}

func (st *state) current() *value.List {
	top, _ := st.frames.Top()
	l, ok := st.arena.List(top.list)
	if !ok {
		panic("open list missing from arena")
	}
	return l
}

func (st *state) appendNode(n value.Node, tok *token.Token) error {
	if err := st.current().Append(n); err != nil {
		st.arena.Release(n)
		return st.allocError(err, tok)
	}
	return nil
}

func (st *state) dot(tok *token.Token) error {
	if st.cfg.validateDots && st.frames.Len() == 1 {
		return &Error{
			Kind:   StructuralError,
			Msg:    "dot outside of a list",
			Text:   tok.Text,
			Source: tok.Source,
			Err:    ErrDot,
		}
	}
	n, err := st.arena.Allocate(value.KindDot)
	if err != nil {
		return st.allocError(err, tok)
	}
	n.SetLoc(tok.Source)
	return st.appendNode(n, tok)
}

func (st *state) open(tok *token.Token) error {
	if st.cfg.maxDepth > 0 && st.frames.Len() > st.cfg.maxDepth {
		return &Error{
			Kind:   StructuralError,
			Msg:    fmt.Sprintf("lists nested deeper than %d", st.cfg.maxDepth),
			Text:   tok.Text,
			Source: tok.Source,
			Err:    ErrDepth,
		}
	}
	n, err := st.arena.Allocate(value.KindList)
	if err != nil {
		return st.allocError(err, tok)
	}
	l := n.(*value.List)
	l.Quoted = tok.Type == token.QUOTE_PAREN_L
	l.SetLoc(tok.Source)
	if err := st.appendNode(l, tok); err != nil {
		return err
	}
	st.frames.Push(frame{list: l.Handle(), open: tok.Source})
	if p := st.cfg.profiler; p != nil && p.IsEnabled() {
		p.Start(l)
	}
	return nil
}

func (st *state) close(tok *token.Token) error {
	if st.frames.Len() == 1 {
		return &Error{
			Kind:   StructuralError,
			Msg:    "unbalanced closing delimiter",
			Text:   tok.Text,
			Source: tok.Source,
			Err:    ErrUnbalanced,
		}
	}
	l := st.current()
	if _, err := st.frames.Pop(); err != nil {
		return &Error{Kind: StructuralError, Msg: err.Error(), Text: tok.Text, Source: tok.Source, Err: err}
	}
	if p := st.cfg.profiler; p != nil && p.IsEnabled() {
		p.End(l)
	}
	if st.cfg.validateDots {
		return checkDots(l)
	}
	return nil
}

// checkDots requires that a list holds at most one dot, that the dot is not
// the first element, and that exactly one element follows it.
func checkDots(l *value.List) error {
	var dot value.Node
	var msg string
	l.Cells.Each(func(i int, n value.Node) bool {
		if n.Kind() != value.KindDot {
			return true
		}
		switch {
		case dot != nil:
			msg = "more than one dot in list"
		case i == 0:
			msg = "dot at the start of a list"
		case i != l.Len()-2:
			msg = "dot must be followed by exactly one element"
		}
		dot = n
		return msg == ""
	})
	if msg == "" {
		return nil
	}
	return &Error{
		Kind:   StructuralError,
		Msg:    msg,
		Text:   ".",
		Source: dot.Loc(),
		Err:    ErrDot,
	}
}

func (st *state) leaf(tok *token.Token) error {
	n, err := literal.Parse(st.arena, tok)
	if err != nil {
		var lim *pool.LimitError
		if errors.As(err, &lim) {
			return st.allocError(err, tok)
		}
		return &Error{
			Kind:   LiteralError,
			Msg:    err.Error(),
			Text:   tok.Text,
			Source: tok.Source,
			Err:    err,
		}
	}
	return st.appendNode(n, tok)
}

func (st *state) finish(eof *token.Token) (*Tree, error) {
	if st.frames.Len() > 1 {
		top, _ := st.frames.Top()
		return nil, &Error{
			Kind:   StructuralError,
			Msg:    fmt.Sprintf("unclosed list at %v", eof.Source),
			Text:   "(",
			Source: top.open,
			Err:    ErrUnclosed,
		}
	}
	st.frames.Destroy()
	return &Tree{Root: st.root, Arena: st.arena}, nil
}

// abort ends the lists still open and releases every node of the read.
func (st *state) abort() {
	p := st.cfg.profiler
	for st.frames.Len() > 1 {
		top, _ := st.frames.Pop()
		if p == nil || !p.IsEnabled() {
			continue
		}
		if l, ok := st.arena.List(top.list); ok {
			p.End(l)
		}
	}
	st.frames.Destroy()
	st.arena.Reset()
}

func (st *state) allocError(err error, tok *token.Token) error {
	rerr := &Error{
		Kind: AllocationError,
		Msg:  err.Error(),
		Err:  err,
	}
	if tok != nil {
		rerr.Text = tok.Text
		rerr.Source = tok.Source
	}
	return rerr
}
