// Copyright © 2024 The MNL authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const noteWidth = 72

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Sources holds source text that does not live in a file, such as
	// expressions given on the command line, keyed by name.
	Sources map[string]string

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, w)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	writeHeader(ew, d, p)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		// wrapped continuation lines align under the note text
		wrapped := wordwrap.String(note, noteWidth)
		lines := strings.SplitN(wrapped, "\n", 2)
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, lines[0])
		if len(lines) > 1 {
			ew.print(indent.String(lines[1], 11) + "\n")
		}
	}
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderError renders err as an error diagnostic.
func (r *Renderer) RenderError(w io.Writer, err error) error {
	return r.Render(w, FromError(err))
}

// errWriter captures the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func writeHeader(ew *errWriter, d Diagnostic, p palette) {
	color := p.boldRed
	switch d.Severity {
	case SeverityWarning:
		color = p.yellow
	case SeverityNote:
		color = p.boldCyan
	}
	ew.printf("%s%s%s%s: %s%s%s\n", color, p.bold, d.Severity, p.reset, p.bold, d.Message, p.reset)
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc = fmt.Sprintf("%s:%d", span.File, span.Line)
		if span.Col > 0 {
			loc = fmt.Sprintf("%s:%d:%d", span.File, span.Line, span.Col)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	line, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}
	num := fmt.Sprint(span.Line)
	pad := strings.Repeat(" ", len(num))
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, num, p.reset, strings.ReplaceAll(line, "\t", "    "))

	col := span.Col
	if col <= 0 {
		col = 1
	}
	end := span.EndCol
	if end <= 0 {
		end = tokenEnd(line, col)
	}
	if end < col {
		end = col
	}
	runes := []rune(line)
	prefix := ""
	if col-1 <= len(runes) {
		prefix = string(runes[:col-1])
	}
	ew.printf(" %s%s |%s  %s%s%s%s", p.boldBlue, pad, p.reset,
		strings.Repeat(" ", displayWidth(prefix)), p.boldRed, strings.Repeat("^", end-col+1), p.reset)
	if span.Label != "" {
		ew.printf(" %s%s%s", p.boldRed, span.Label, p.reset)
	}
	ew.print("\n")
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
}

func (r *Renderer) sourceLine(file string, line int) (string, bool) {
	if line <= 0 || file == "" {
		return "", false
	}
	text, ok := r.Sources[file]
	if !ok {
		read := r.SourceReader
		if read == nil {
			read = os.ReadFile
		}
		data, err := read(file)
		if err != nil {
			return "", false
		}
		text = string(data)
	}
	lines := strings.Split(text, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[line-1], "\r"), true
}

// tokenEnd returns the column of the last rune of the token starting at col.
func tokenEnd(line string, col int) int {
	runes := []rune(line)
	if col > len(runes) {
		return col
	}
	end := col - 1
	for end < len(runes) && !strings.ContainsRune(" \t()\"", runes[end]) {
		end++
	}
	if end == col-1 {
		return col
	}
	return end
}

// displayWidth returns the terminal width of s with tabs expanded to four
// columns, as source lines are printed.
func displayWidth(s string) int {
	return ansi.PrintableRuneWidth(strings.ReplaceAll(s, "\t", "    "))
}
