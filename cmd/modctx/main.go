// Package main is the entry point for the modctx CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/modctx/cli/internal/cmd"
	merrors "github.com/modctx/cli/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		// Check if the error carries an explicit exit code
		var exitErr *merrors.ExitError
		if errors.As(err, &exitErr) {
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(merrors.ExitCodeFromError(err))
	}
}
