// Copyright © 2024 The MNL authors

package cmd

import (
	"fmt"

	"github.com/mnl-lang/mnl/astutil"
	"github.com/mnl-lang/mnl/printer"
	"github.com/spf13/cobra"
)

func newReadCommand(s *settings) *cobra.Command {
	var (
		readExpression bool
		readTree       bool
		readLocations  bool
		readWidth      int
		readStats      bool
	)
	cmd := &cobra.Command{
		Use:   "read [flags] [files...]",
		Short: "Read source and print its forms",
		Long: `Read mnl source and print every top-level form in canonical form.

With no files, reads from stdin.  Every input is read even when an earlier
one fails; each failure is reported with the offending source line.

Examples:
  mnl read file.mnl                 Print the forms of a file
  mnl read -e '(a #ff 017)'         Prints (a 255 15)
  mnl read --tree --locations f.mnl Dump structure with source locations
  mnl read --scanner parsec f.mnl   Read with the combinator scanner`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := loadInputs(cmd.InOrStdin(), args, readExpression, nil)
			if err != nil {
				return err
			}
			p, done, err := s.newParser(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer done()
			rend, err := s.newRenderer(sources(ins))
			if err != nil {
				return err
			}

			pcfg := printer.DefaultConfig()
			pcfg.Locations = readLocations
			pcfg.Width = readWidth
			out := cmd.OutOrStdout()
			failed := false
			for _, in := range ins {
				tree, err := p.ReadString(in.name, in.text)
				if err != nil {
					hint := ""
					if in.file {
						hint = in.name
					}
					renderReadError(cmd.ErrOrStderr(), rend, hint, err)
					failed = true
					continue
				}
				if readTree {
					err = printer.Tree(out, tree.Forms(), pcfg)
				} else {
					err = printer.Format(out, tree.Forms(), pcfg)
				}
				if err == nil && readStats {
					_, err = fmt.Fprintf(cmd.ErrOrStderr(), "%s: forms=%d nodes=%d depth=%d\n",
						in.name, tree.Len(), tree.Arena.Live(), astutil.MaxDepth(tree.Forms()))
				}
				tree.Release()
				if err != nil {
					return err
				}
			}
			if failed {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&readExpression, "expression", "e", false,
		"Interpret arguments as source text.")
	cmd.Flags().BoolVar(&readTree, "tree", false,
		"Print the structure of each form instead of its source text.")
	cmd.Flags().BoolVar(&readLocations, "locations", false,
		"Annotate the tree dump with source locations.")
	cmd.Flags().IntVar(&readWidth, "width", 80,
		"Preferred maximum line width (0 prints each form on one line).")
	cmd.Flags().BoolVar(&readStats, "stats", false,
		"Report form, node and nesting counts of each input to stderr.")
	return cmd
}
