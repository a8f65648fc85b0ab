// Command goprolog is the REPL and batch-mode front end for the resolver
// core in pkg/prolog: it loads a Horn-clause source file, then either drops
// into an interactive "?- " query prompt or, under --jobs, fans a list of
// queries out across independent resolver instances.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
