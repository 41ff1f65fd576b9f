package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/svcgen/cli/internal/config"
	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(gc *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the svcgen config file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file matches the embedded CUE schema
  3. Values decode, including SVCGEN_* environment variables

The config path is resolved using precedence:
  --config flag > SVCGEN_CONFIG env > ~/.svcgen/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, gc)
		},
	}
}

func runConfigVet(c *cobra.Command, gc *GlobalConfig) error {
	w := c.OutOrStdout()
	path := gc.ConfigPath

	output.Debug("validating config", "path", path, "source", gc.ConfigSource)

	// Check 1: Config file exists
	if _, err := os.Stat(path); err != nil {
		fmtLine(w, output.FormatFailure("Config file found"))
		return oerrors.NewIOError("configuration file not found", path,
			"Run 'svcgen config init' to create default configuration", err)
	}
	fmtLine(w, output.FormatVetCheck("Config file found", path))

	// Check 2: Schema
	validator, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := validator.ValidateFile(path); err != nil {
		fmtLine(w, output.FormatFailure("Schema valid"))
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				fmtLine(w, "  "+e.Error())
			}
			return &oerrors.ExitError{
				Code:    oerrors.ExitConfigurationError,
				Err:     oerrors.NewConfigurationError(oerrors.StageResolution, verrs.Error(), path, ""),
				Printed: true,
			}
		}
		return oerrors.NewIOError("reading configuration", path, "", err)
	}
	fmtLine(w, output.FormatVetCheck("Schema valid", ""))

	// Check 3: Values decode
	if gc.LoadErr != nil {
		fmtLine(w, output.FormatFailure("Values decode"))
		return gc.LoadErr
	}
	fmtLine(w, output.FormatVetCheck("Values decode", fmt.Sprintf("%d keys", len(config.Keys))))

	return nil
}

// fmtLine writes line followed by a newline. Write errors to the terminal
// are not actionable.
func fmtLine(w io.Writer, line string) {
	_, _ = fmt.Fprintln(w, line)
}
