// Command patrol simulates a patrolling guard on a grid map.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/patrol/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands report their own failures and return an ExitError.
		// Anything else is a usage error from cobra.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(cli.ExitCommandError)
		}
		os.Exit(exitErr.Code)
	}
}
