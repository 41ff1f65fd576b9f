// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/svcgen/cli/internal/config"
	"github.com/svcgen/cli/internal/output"
	"github.com/svcgen/cli/internal/version"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command
// constructor.
type GlobalConfig struct {
	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ConfigSource records where ConfigPath came from.
	ConfigSource config.ConfigSource

	// Layers holds the config file and environment values.
	Layers *config.Layers

	// LoadErr is the error from loading Layers. Commands that need the
	// user defaults return it; others ignore it.
	LoadErr error

	Verbose bool
}

// NewRootCmd creates the root command for the svcgen CLI.
func NewRootCmd() *cobra.Command {
	gc := &GlobalConfig{}

	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)

	rootCmd := &cobra.Command{
		Use:   "svcgen",
		Short: "FastAPI service scaffolding",
		Long: `svcgen generates ready-to-run FastAPI service projects.

A project name is turned into a directory slug and a Python package name,
and a tree of files is rendered for the selected capabilities: PostgreSQL,
Redis, containers and Celery background tasks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			gc.Verbose = verboseFlag
			var timestamps *bool
			if cmd.Flags().Changed("timestamps") {
				timestamps = output.BoolPtr(timestampsFlag)
			}
			return initializeGlobals(gc, configFlag, timestamps)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (env: SVCGEN_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "show timestamps in log output")

	rootCmd.AddCommand(NewNewCmd(gc))
	rootCmd.AddCommand(NewTemplatesCmd(gc))
	rootCmd.AddCommand(NewConfigCmd(gc))
	rootCmd.AddCommand(NewVersionCmd(gc))

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(gc *GlobalConfig, configFlag string, timestampsFlag *bool) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: configFlag})
	if err != nil {
		gc.LoadErr = err
	} else {
		gc.ConfigPath = pathResult.ConfigPath
		gc.ConfigSource = pathResult.Source
		gc.Layers, gc.LoadErr = config.NewLoader().Load(pathResult.ConfigPath)
	}

	// Timestamps: flag (if explicitly set) > env > config > default(true)
	settings := config.ResolveSettings(gc.Layers, config.Overrides{Timestamps: timestampsFlag})
	output.SetupLogging(output.LogConfig{
		Verbose:    gc.Verbose,
		Timestamps: output.BoolPtr(settings.Timestamps),
	})

	info := version.Get()
	output.Debug("svcgen started",
		"version", info.Version,
		"config", gc.ConfigPath,
		"config_source", gc.ConfigSource,
	)
	if gc.LoadErr != nil {
		// Don't fail here - commands that need config report it
		output.Debug("config load error", "error", gc.LoadErr)
	}

	return nil
}
