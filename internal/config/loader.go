package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	oerrors "github.com/svcgen/cli/internal/errors"
)

// Environment variable prefix for svcgen configuration.
const envPrefix = "SVCGEN"

var envReplacer = strings.NewReplacer(".", "_")

// EnvVar returns the environment variable bound to a configuration key.
func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(envReplacer.Replace(key))
}

// Layers holds configuration split by where it came from, so the resolver
// can record the source of every value.
type Layers struct {
	// Path is the config file that was read.
	Path string

	// FileExists is false when Path does not exist.
	FileExists bool

	// File holds values from the config file.
	File *Config

	// Env holds values from SVCGEN_* environment variables.
	Env *Config
}

// Loader reads the config file and the environment.
type Loader struct {
	env *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Set up environment variable bindings
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	for _, key := range Keys {
		_ = v.BindEnv(key, EnvVar(key))
	}

	return &Loader{env: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error.
func (l *Loader) Load(configFile string) (*Layers, error) {
	if configFile == "" {
		paths, err := DefaultPaths()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
		configFile = paths.ConfigFile
	}

	// Expand ~ in path
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	layers := &Layers{Path: expandedPath, File: &Config{}, Env: &Config{}}

	fv := viper.New()
	fv.SetConfigFile(expandedPath)
	fv.SetConfigType("yaml")

	if err := fv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, oerrors.NewConfigurationError(oerrors.StageResolution,
				"reading config file: "+err.Error(), expandedPath,
				"Fix the file or check it with: svcgen config vet")
		}
		// Config file not found is OK, we'll use defaults + env vars
	} else {
		layers.FileExists = true
		if err := fv.Unmarshal(layers.File); err != nil {
			return nil, oerrors.NewConfigurationError(oerrors.StageResolution,
				"decoding config file: "+err.Error(), expandedPath,
				"Check value types with: svcgen config vet")
		}
	}

	if err := l.env.Unmarshal(layers.Env); err != nil {
		return nil, oerrors.NewConfigurationError(oerrors.StageResolution,
			"decoding environment: "+err.Error(), envPrefix+"_*",
			"Boolean variables accept true or false")
	}

	return layers, nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
