// Copyright © 2024 The MNL authors

package cmd

import (
	"io"

	"github.com/mnl-lang/mnl/diagnostic"
	"github.com/mnl-lang/mnl/parser/reader"
)

// renderReadError renders a failed read of the named source to w.
func renderReadError(w io.Writer, r *diagnostic.Renderer, name string, err error) {
	d := diagnostic.FromError(err)
	if reader.IsKind(err, reader.LexicalError) && name != "" {
		d.Notes = append(d.Notes, "try: mnl tokens "+name)
	}
	_ = r.Render(w, d)
}
