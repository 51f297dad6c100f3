// Copyright © 2024 The MNL authors

// Package source loads mnl program text and prepares it for scanning.
package source

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mnl-lang/mnl/parser/token"
)

// ErrOpenString is the cause of a string literal left open at the end of a
// line.  String literals never span lines.
var ErrOpenString = errors.New("string literal not closed")

// ReadFile returns the contents of the file at path.
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(b), nil
}

// Lines splits text at newlines.  Empty lines are kept, including a final
// empty line after a trailing newline, so that joining the result with "\n"
// restores text.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// StripComments returns a copy of lines with every comment removed.  A
// comment begins at the first ';' outside of a string literal and runs to the
// end of its line.  Inside a string a backslash escapes the character after
// it.  A string left open at the end of a line is reported as a
// *token.LocationError naming the line.
func StripComments(file string, lines []string) ([]string, error) {
	out := make([]string, len(lines))
	for i, line := range lines {
		stripped, ok := stripLine(line)
		if !ok {
			return nil, &token.LocationError{
				Err:    ErrOpenString,
				Source: &token.Location{File: file, Line: i + 1},
			}
		}
		out[i] = stripped
	}
	return out, nil
}

func stripLine(line string) (string, bool) {
	inString := false
	for j := 0; j < len(line); j++ {
		switch line[j] {
		case '\\':
			if inString {
				j++
			}
		case '"':
			inString = !inString
		case ';':
			if !inString {
				return line[:j], true
			}
		}
	}
	return line, !inString
}

// Strip removes comments from text, preserving its line structure.
func Strip(file, text string) (string, error) {
	lines, err := StripComments(file, Lines(text))
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
