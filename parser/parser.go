// Copyright © 2024 The MNL authors

// Package parser selects a token scanner and reads mnl source text with it.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/mnl-lang/mnl/parser/lexer"
	"github.com/mnl-lang/mnl/parser/parsecscan"
	"github.com/mnl-lang/mnl/parser/reader"
	"github.com/mnl-lang/mnl/parser/token"
	"github.com/mnl-lang/mnl/source"
)

// Scanner names a token scanner implementation.
type Scanner string

// Available scanners.
const (
	ScannerLexer  Scanner = "lexer"
	ScannerParsec Scanner = "parsec"
)

// Scanners lists the valid scanner names.
var Scanners = []Scanner{ScannerLexer, ScannerParsec}

// ParseScanner validates a scanner name.
func ParseScanner(name string) (Scanner, error) {
	for _, s := range Scanners {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown scanner %q (expected one of %v)", name, Scanners)
}

type config struct {
	scanner       Scanner
	stripComments bool
	readerOpts    []reader.Option
}

// Option configures a Parser.
type Option func(*config)

// WithScanner selects the token scanner.  The default is ScannerLexer.
func WithScanner(s Scanner) Option {
	return func(c *config) {
		c.scanner = s
	}
}

// WithStripComments removes comments from the source text before it is
// scanned.
func WithStripComments(on bool) Option {
	return func(c *config) {
		c.stripComments = on
	}
}

// WithReaderOptions passes opts to the underlying reader.
func WithReaderOptions(opts ...reader.Option) Option {
	return func(c *config) {
		c.readerOpts = append(c.readerOpts, opts...)
	}
}

// Parser reads named source streams into trees.
type Parser struct {
	cfg    config
	reader *reader.Reader
}

// New returns a Parser configured by opts.
func New(opts ...Option) *Parser {
	p := &Parser{cfg: config{scanner: ScannerLexer}}
	for _, opt := range opts {
		opt(&p.cfg)
	}
	p.reader = reader.New(p.cfg.readerOpts...)
	return p
}

// Tokens returns a token stream over r using the configured scanner.
func (p *Parser) Tokens(name string, r io.Reader) (reader.TokenStream, error) {
	if p.cfg.stripComments {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		text, err := source.Strip(name, string(b))
		if err != nil {
			return nil, err
		}
		r = strings.NewReader(text)
	}
	switch p.cfg.scanner {
	case ScannerParsec:
		return parsecscan.New(name, r), nil
	case ScannerLexer, "":
		return lexer.New(token.NewScanner(name, r)), nil
	}
	return nil, fmt.Errorf("unknown scanner %q", p.cfg.scanner)
}

// Read reads every form in r.
func (p *Parser) Read(name string, r io.Reader) (*reader.Tree, error) {
	stream, err := p.Tokens(name, r)
	if err != nil {
		return nil, err
	}
	return p.reader.Read(stream)
}

// ReadString reads every form in text.
func (p *Parser) ReadString(name, text string) (*reader.Tree, error) {
	return p.Read(name, strings.NewReader(text))
}

// ReadFile reads every form in the file at path.
func (p *Parser) ReadFile(path string) (*reader.Tree, error) {
	text, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.ReadString(path, text)
}
