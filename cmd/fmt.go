// Copyright © 2024 The MNL authors

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mnl-lang/mnl/diagnostic"
	"github.com/mnl-lang/mnl/parser"
	"github.com/mnl-lang/mnl/printer"
	"github.com/spf13/cobra"
)

type fmtOptions struct {
	write    bool
	diff     bool
	list     bool
	excludes []string
	printer  *printer.Config
}

func newFmtCommand(s *settings) *cobra.Command {
	opts := &fmtOptions{printer: printer.DefaultConfig()}
	cmd := &cobra.Command{
		Use:   "fmt [flags] [files...]",
		Short: "Format mnl source files",
		Long: `Format mnl source files in canonical form.

Each form is printed on one line when it fits in --width columns.  Longer
lists are broken after their first element with the remaining elements
indented beneath it.  Literals are normalized: #ff becomes 255.  Comments
are not preserved.

With no files, reads from stdin and writes to stdout.
With files, prints formatted output to stdout unless -w is given.

Modes:
  (default)   Print formatted code to stdout
  -w          Write result back to source file
  -d          Display a diff of changes
  -l          List files that would be changed

Examples:
  mnl fmt file.mnl                Print formatted output
  mnl fmt -w src/...              Format every file under src in place
  mnl fmt -l *.mnl                List files needing formatting
  cat file.mnl | mnl fmt          Format from stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, done, err := s.newParser(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer done()

			if len(args) == 0 {
				src, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				out, err := formatSource(p, stdinName, src, opts.printer)
				if err != nil {
					return s.reportFmtError(cmd, stdinName, src, err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			expanded, err := expandArgs(args, opts.excludes)
			if err != nil {
				return err
			}
			failed := false
			for _, path := range expanded {
				changed, err := fmtFile(cmd.OutOrStdout(), p, path, opts)
				if err != nil {
					src, _ := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
					if rerr := s.reportFmtError(cmd, path, src, err); rerr != errReported {
						return rerr
					}
					failed = true
				} else if opts.list && changed {
					failed = true
				}
			}
			if failed {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false,
		"Write result to (source) file instead of stdout.")
	cmd.Flags().BoolVarP(&opts.diff, "diff", "d", false,
		"Display diffs instead of rewriting files.")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false,
		"List files whose formatting differs from mnl fmt's.")
	cmd.Flags().IntVar(&opts.printer.IndentSize, "indent-size", 2,
		"Number of spaces per indentation level.")
	cmd.Flags().IntVar(&opts.printer.Width, "width", 80,
		"Preferred maximum line width.")
	cmd.Flags().StringArrayVar(&opts.excludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	return cmd
}

// reportFmtError renders err and returns errReported.  Errors other than read
// failures are returned unchanged.
func (s *settings) reportFmtError(cmd *cobra.Command, name string, src []byte, err error) error {
	d := diagnostic.FromError(err)
	if len(d.Spans) == 0 {
		return err
	}
	rend, rerr := s.newRenderer(map[string]string{name: string(src)})
	if rerr != nil {
		return rerr
	}
	renderReadError(cmd.ErrOrStderr(), rend, "", err)
	return errReported
}

func formatSource(p *parser.Parser, name string, src []byte, cfg *printer.Config) ([]byte, error) {
	tree, err := p.Read(name, bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer tree.Release()
	var buf bytes.Buffer
	if err := printer.Format(&buf, tree.Forms(), cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fmtFile(w io.Writer, p *parser.Parser, path string, opts *fmtOptions) (bool, error) {
	src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	out, err := formatSource(p, path, src, opts.printer)
	if err != nil {
		return false, err
	}

	changed := !bytes.Equal(src, out)

	if opts.list {
		if changed {
			fmt.Fprintln(w, path) //nolint:errcheck // best-effort listing
		}
		return changed, nil
	}

	if opts.diff {
		if changed {
			printUnifiedDiff(w, path, src, out)
		}
		return changed, nil
	}

	if opts.write {
		if !changed {
			return false, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return false, fmt.Errorf("%s: %w", path, err)
		}
		return true, os.WriteFile(path, out, info.Mode().Perm())
	}

	_, err = w.Write(out)
	return changed, err
}

func printUnifiedDiff(w io.Writer, path string, original, formatted []byte) {
	// Simple line-by-line diff output
	fmt.Fprintf(w, "--- %s\n", path) //nolint:errcheck
	fmt.Fprintf(w, "+++ %s\n", path) //nolint:errcheck

	origLines := splitLines(original)
	fmtLines := splitLines(formatted)

	i, j := 0, 0
	for i < len(origLines) || j < len(fmtLines) {
		switch {
		case i < len(origLines) && j < len(fmtLines) && origLines[i] == fmtLines[j]:
			fmt.Fprintf(w, " %s\n", origLines[i]) //nolint:errcheck
			i++
			j++
		case i < len(origLines):
			fmt.Fprintf(w, "-%s\n", origLines[i]) //nolint:errcheck
			i++
		default:
			fmt.Fprintf(w, "+%s\n", fmtLines[j]) //nolint:errcheck
			j++
		}
	}
}

func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}
