package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svcgen/cli/internal/output"
	"github.com/svcgen/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show svcgen version information.

Displays the CLI version, commit, build date, Go version and the CUE SDK
used to validate the template catalog and config file.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVersion(c, outputFlag)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "text", "output format: text, json, yaml")

	return c
}

func runVersion(c *cobra.Command, outputFlag string) error {
	format, err := parseFormat(outputFlag)
	if err != nil {
		return err
	}

	info := version.Get()
	if format != output.FormatText {
		return output.Encode(c.OutOrStdout(), format, info)
	}

	_, err = fmt.Fprintln(c.OutOrStdout(), info.String())
	return err
}
