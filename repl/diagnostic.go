// Copyright © 2024 The MNL authors

package repl

import (
	"io"

	"github.com/mnl-lang/mnl/diagnostic"
	"github.com/mnl-lang/mnl/parser/reader"
)

// renderError reports a failed read of text.  Locations in interactive input
// are relative to the start of the pending input.
func renderError(w io.Writer, color diagnostic.ColorMode, text string, err error) {
	d := diagnostic.FromError(err)
	if reader.IsUnclosed(err) {
		d.Notes = append(d.Notes, "input ended before the list was closed")
	}
	r := &diagnostic.Renderer{
		Color:   color,
		Sources: map[string]string{InputName: text},
	}
	_ = r.Render(w, d)
}
