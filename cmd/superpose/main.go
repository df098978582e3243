// Command superpose is a thin CLI front end over the prover package.
// Clausification, option parsing beyond this solve subcommand's own
// flags, and proof pretty-printing remain external collaborators;
// this command exists only so the core is runnable end-to-end from a
// terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
