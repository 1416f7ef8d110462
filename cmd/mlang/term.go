package main

import (
	"io"
	"os"
)

// stdinIsTerminal reports whether r is an *os.File attached to a terminal.
func stdinIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(f.Fd())
}
