// Package cliutil provides output and logging helpers for the swagfix CLI.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer.
// A failed write is reported on stderr and otherwise ignored.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Errorf writes an "Error: " prefixed line to the writer.
func Errorf(w io.Writer, format string, args ...any) {
	Writef(w, "Error: "+format+"\n", args...)
}
