// Package main is the entry point for the pngtidy CLI.
package main

import (
	"os"

	"github.com/thoreinstein/pngtidy/cmd/pngtidy/commands"
	"github.com/thoreinstein/pngtidy/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
