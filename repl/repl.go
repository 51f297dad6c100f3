// Copyright © 2024 The MNL authors

// Package repl implements an interactive reader.  Each complete input is read
// and printed back in canonical form.  Input that leaves a list open is
// continued on the next line.
package repl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/mnl-lang/mnl/diagnostic"
	"github.com/mnl-lang/mnl/parser"
	"github.com/mnl-lang/mnl/parser/reader"
	"github.com/mnl-lang/mnl/printer"
)

// InputName is the source name given to interactive input.
const InputName = "stdin"

type config struct {
	stdin       io.ReadCloser
	stdout      io.Writer
	stderr      io.Writer
	parser      *parser.Parser
	printer     *printer.Config
	tree        bool
	color       diagnostic.ColorMode
	historyFile string
}

func newConfig(opts ...Option) *config {
	config := &config{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		printer:     printer.DefaultConfig(),
		historyFile: historyPath(),
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.parser == nil {
		config.parser = parser.New()
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStdout allows overriding where forms are printed.
func WithStdout(stdout io.Writer) Option {
	return func(c *config) {
		c.stdout = stdout
	}
}

// WithStderr allows overriding where errors are reported.
func WithStderr(stderr io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithParser reads input with p.
func WithParser(p *parser.Parser) Option {
	return func(c *config) {
		c.parser = p
	}
}

// WithPrinter formats output according to cfg.
func WithPrinter(cfg *printer.Config) Option {
	return func(c *config) {
		c.printer = cfg
	}
}

// WithTree prints a structural dump of each form instead of its source text.
func WithTree(on bool) Option {
	return func(c *config) {
		c.tree = on
	}
}

// WithColor sets the color mode of error output.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithHistoryFile stores input history at path.  An empty path disables
// history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// RunRepl reads input until EOF.  Errors in the input are reported and do not
// stop the loop.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	cont := strings.Repeat(" ", len(prompt))

	ensureHistoryFilePermissions(cfg.historyFile)
	s := &session{cfg: cfg, completer: newSymbolCompleter()}
	rlCfg := &readline.Config{
		Stdout:            cfg.stdout,
		Stderr:            cfg.stderr,
		Prompt:            prompt,
		HistoryFile:       cfg.historyFile,
		HistorySearchFold: true,
		AutoComplete:      s.completer,
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	var buf bytes.Buffer
	for {
		if buf.Len() == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		line, err := rl.ReadSlice()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			continue
		}
		if err != nil {
			break
		}
		if buf.Len() == 0 && len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		buf.Write(line)
		buf.WriteByte('\n')
		if s.eval(buf.String(), false) {
			buf.Reset()
		}
	}
	if buf.Len() > 0 {
		s.eval(buf.String(), true)
	}
	return nil
}

type session struct {
	cfg       *config
	completer *symbolCompleter
}

// eval reads and prints text.  It returns false when text is incomplete and
// more input may complete it.  When final is set the input is never
// continued.
func (s *session) eval(text string, final bool) bool {
	tree, err := s.cfg.parser.ReadString(InputName, text)
	if err != nil {
		if reader.IsUnclosed(err) && !final {
			return false
		}
		renderError(s.cfg.stderr, s.cfg.color, text, err)
		return true
	}
	defer tree.Release()
	forms := tree.Forms()
	s.completer.add(forms)
	if s.cfg.tree {
		err = printer.Tree(s.cfg.stdout, forms, s.cfg.printer)
	} else {
		err = printer.Format(s.cfg.stdout, forms, s.cfg.printer)
	}
	if err != nil {
		fmt.Fprintln(s.cfg.stderr, err) //nolint:errcheck // best-effort error display
	}
	return true
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mnl_history")
}

// ensureHistoryFilePermissions creates the history file if needed and limits
// it to the current user.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0600) //#nosec G304
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}
