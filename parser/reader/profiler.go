// Copyright © 2024 The MNL authors

package reader

import "github.com/mnl-lang/mnl/value"

// Profiler observes the structure of a read.  Start is called when a list is
// opened and End when it is closed.  Lists left open by a failed read are
// ended, innermost first, before the read returns.
type Profiler interface {
	// IsEnabled reports whether the profiler wants Start/End calls.
	IsEnabled() bool
	// Enable the profiler.
	Enable() error
	// Complete ends the profiling session.
	Complete() error
	// Start marks the opening of a list.
	Start(list *value.List)
	// End marks the closing of a list.
	End(list *value.List)
}
