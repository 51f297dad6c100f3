// Copyright © 2024 The MNL authors

package cmd

import (
	"fmt"
	"strings"

	"github.com/mnl-lang/mnl/parser/token"
	"github.com/spf13/cobra"
)

func newTokensCommand(s *settings) *cobra.Command {
	var (
		tokensExpression bool
		tokensSpace      bool
	)
	cmd := &cobra.Command{
		Use:   "tokens [flags] [files...]",
		Short: "List the tokens of source text",
		Long: `Scan mnl source and print one token per line with its location.

Scanning stops at the first malformed token of each input.  Whitespace tokens
are only shown with --space.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := loadInputs(cmd.InOrStdin(), args, tokensExpression, nil)
			if err != nil {
				return err
			}
			p, done, err := s.newParser(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer done()

			out := cmd.OutOrStdout()
			failed := false
			for _, in := range ins {
				stream, err := p.Tokens(in.name, strings.NewReader(in.text))
				if err != nil {
					return err
				}
			scan:
				for {
					for _, tok := range stream.ReadToken() {
						switch tok.Type {
						case token.SPACE:
							if !tokensSpace {
								continue
							}
						case token.ERROR, token.INVALID:
							failed = true
						}
						if _, err := fmt.Fprintf(out, "%v\t%v\n", tok.Source, tok); err != nil {
							return err
						}
						if tok.Type == token.EOF || tok.Type == token.ERROR {
							break scan
						}
					}
				}
			}
			if failed {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&tokensExpression, "expression", "e", false,
		"Interpret arguments as source text.")
	cmd.Flags().BoolVar(&tokensSpace, "space", false,
		"Include whitespace tokens.")
	return cmd
}
