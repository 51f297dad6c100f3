// Copyright © 2024 The MNL authors

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errReported is returned by commands whose failures were already rendered.
var errReported = errors.New("errors were reported")

// NewRootCommand returns the mnl command tree.  Each tree has its own
// configuration.
func NewRootCommand() *cobra.Command {
	s := &settings{v: viper.New()}
	rootCmd := &cobra.Command{
		Use:   "mnl",
		Short: "MNL reader and source tools",
		Long: `mnl reads source text written in MNL, a minimal Lisp notation, into trees
of integers, reals, strings, symbols and lists.

Getting started:
  mnl read file.mnl              Print the forms of a file in canonical form
  mnl read -e '(a . b)'          Read an expression given on the command line
  mnl read --tree file.mnl       Dump the structure of each form
  mnl tokens file.mnl            List the tokens of a file
  mnl fmt -w src/...             Rewrite every .mnl file under src
  mnl repl                       Read forms interactively

Settings may also be given in $HOME/.mnl.yaml or as MNL_* environment
variables, for example MNL_SCANNER=parsec or MNL_POOL_LIMIT=10000.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.initConfig()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&s.cfgFile, "config", "", "config file (default is $HOME/.mnl.yaml)")
	pf.String(keyColor, "auto", `Control colored output: "auto", "always", or "never".`)
	pf.String(keyScanner, "lexer", `Token scanner: "lexer" or "parsec".`)
	pf.Int(keyMaxDepth, 0, "Maximum list nesting depth (0 means unlimited).")
	pf.Int(keyPoolLimit, 0, "Maximum number of nodes one read may allocate (0 means unlimited).")
	pf.Bool(keyValidateDots, true, "Check the placement of dotted pair markers.")
	pf.Bool(keyStripComments, false, "Remove comments from the source before scanning.")
	pf.String(keyTrace, "none", `Trace list structure to stderr: "none", "otel", or "opencensus".`)
	pf.Int(keyTraceDepth, 0, "Only trace lists nested at most this deep (0 means all).")
	for _, key := range settingKeys {
		_ = s.v.BindPFlag(key, pf.Lookup(key))
	}

	rootCmd.AddCommand(
		newReadCommand(s),
		newTokensCommand(s),
		newFmtCommand(s),
		newReplCommand(s),
	)
	return rootCmd
}

// Execute runs the mnl command tree.  This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
