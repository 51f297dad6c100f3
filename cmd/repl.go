// Copyright © 2024 The MNL authors

package cmd

import (
	"io"
	"os"

	"github.com/mnl-lang/mnl/repl"
	"github.com/spf13/cobra"
)

func newReplCommand(s *settings) *cobra.Command {
	var replTree bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read forms interactively",
		Long: `Start an interactive reader.  Each input is printed back in canonical
form.  A line that leaves a list open is continued on the next line.  Line
editing and command history are supported via readline.  Use Ctrl-D to exit
and Ctrl-C to discard pending input.

Example session:
  mnl> (a   #ff
         017)
  (a 255 15)
  mnl> '(x . y)
  '(x . y)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, done, err := s.newParser(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer done()
			mode, err := s.colorMode()
			if err != nil {
				return err
			}
			opts := []repl.Option{
				repl.WithParser(p),
				repl.WithTree(replTree),
				repl.WithColor(mode),
				repl.WithStdout(cmd.OutOrStdout()),
				repl.WithStderr(cmd.ErrOrStderr()),
			}
			if in := cmd.InOrStdin(); in != os.Stdin {
				opts = append(opts, repl.WithStdin(io.NopCloser(in)), repl.WithHistoryFile(""))
			}
			return repl.RunRepl("mnl> ", opts...)
		},
	}
	cmd.Flags().BoolVar(&replTree, "tree", false,
		"Print the structure of each form instead of its source text.")
	return cmd
}
