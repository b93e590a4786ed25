// Command lexaard builds, combines and tests finite-state automata.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/lexaard/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// A negative outcome (automata differ, scenarios failed) has already
	// been reported on stdout.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != cli.ExitFailure {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
