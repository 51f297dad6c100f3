// Copyright © 2024 The MNL authors

package cmd

import (
	"fmt"
	"io"

	"github.com/mnl-lang/mnl/source"
)

// stdinName is the source name of text read from standard input.
const stdinName = "<stdin>"

type input struct {
	name string
	text string
	file bool
}

// loadInputs returns the sources named by args.  With expression set each
// argument is source text.  With no arguments stdin is read.
func loadInputs(stdin io.Reader, args []string, expression bool, excludes []string) ([]input, error) {
	if expression {
		ins := make([]input, len(args))
		for i, arg := range args {
			ins[i] = input{name: fmt.Sprintf("expr%d", i+1), text: arg}
		}
		return ins, nil
	}
	if len(args) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []input{{name: stdinName, text: string(b)}}, nil
	}
	paths, err := expandArgs(args, excludes)
	if err != nil {
		return nil, err
	}
	ins := make([]input, 0, len(paths))
	for _, path := range paths {
		text, err := source.ReadFile(path)
		if err != nil {
			return nil, err
		}
		ins = append(ins, input{name: path, text: text, file: true})
	}
	return ins, nil
}

// sources indexes the text of ins by name for error rendering.
func sources(ins []input) map[string]string {
	m := make(map[string]string, len(ins))
	for _, in := range ins {
		m[in.name] = in.text
	}
	return m
}
