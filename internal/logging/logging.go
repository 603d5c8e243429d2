// SPDX-License-Identifier: MPL-2.0

// Package logging constructs the application logger. All diagnostic output
// goes to stderr so that rendered outcome values on stdout stay clean for
// piping.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w. Verbose mode lowers the level to debug
// and reports caller locations.
func New(w io.Writer, verbose bool) *log.Logger {
	opts := log.Options{
		Prefix: "workscript",
	}
	if verbose {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}
	return log.NewWithOptions(w, opts)
}
