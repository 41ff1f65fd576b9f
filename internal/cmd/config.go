package cmd

import (
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(gc *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long: `Manage the svcgen user defaults file.

The file holds defaults for author, email, description, git initialisation
and log timestamps. Values are resolved with the precedence
flag > SVCGEN_* environment variable > config file > built-in default.`,
	}

	c.AddCommand(NewConfigInitCmd(gc))
	c.AddCommand(NewConfigVetCmd(gc))

	return c
}
