package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/svcgen/cli/internal/config"
	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(gc *GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a config file with the built-in defaults.

The file is written to the resolved config path:
  --config flag > SVCGEN_CONFIG env > ~/.svcgen/config.yaml

Examples:
  # Initialize configuration
  svcgen config init

  # Overwrite existing configuration
  svcgen config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, gc, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing configuration")

	return c
}

func runConfigInit(c *cobra.Command, gc *GlobalConfig, force bool) error {
	path := gc.ConfigPath
	if path == "" {
		paths, err := config.DefaultPaths()
		if err != nil {
			return oerrors.NewIOError("could not determine home directory", "~", "", err)
		}
		path = paths.ConfigFile
	}

	if _, err := os.Stat(path); err == nil && !force {
		return oerrors.NewConfigurationError(oerrors.StageResolution,
			"configuration already exists", path,
			"Use --force to overwrite existing configuration.")
	}

	data, err := config.Marshal(config.DefaultConfig())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.NewIOError("could not create config directory", filepath.Dir(path), "", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return oerrors.NewIOError("could not write config file", path, "", err)
	}

	w := c.OutOrStdout()
	fmtLine(w, output.FormatCheckmark("Configuration initialized at "+path))
	fmtLine(w, "Validate with: svcgen config vet")
	return nil
}
