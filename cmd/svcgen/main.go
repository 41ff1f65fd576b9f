// Package main is the entry point for the svcgen CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/svcgen/cli/internal/cmd"
	oerrors "github.com/svcgen/cli/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	err := rootCmd.Execute()
	if err == nil {
		return
	}

	code := oerrors.ExitCodeFromError(err)

	// Only print if the command layer hasn't already printed it
	var exitErr *oerrors.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Printed {
		fmt.Fprintln(os.Stderr, oerrors.Render(err))
	}
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		fmt.Fprintf(os.Stderr, "exit code %d: %s\n", code, oerrors.ExitCodeName(code))
	}
	os.Exit(code)
}
