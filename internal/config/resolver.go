package config

import (
	"os"

	"github.com/svcgen/cli/internal/output"
	"github.com/svcgen/cli/internal/project"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value with its provenance.
type ResolvedValue struct {
	Key    string
	Value  any
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]any
}

// Overrides are values given on the command line. Nil means the flag was
// not set.
type Overrides struct {
	Author      *string
	Email       *string
	Description *string
	GitInit     *bool
	Timestamps  *bool
}

// Settings are the user defaults after precedence resolution.
type Settings struct {
	Author      string
	Email       string
	Description string
	GitInit     bool
	Timestamps  bool

	// Values records how each setting was resolved.
	Values []ResolvedValue
}

// Metadata returns the project metadata carried by the settings.
func (s Settings) Metadata() project.Metadata {
	return project.Metadata{
		Author:      s.Author,
		Email:       s.Email,
		Description: s.Description,
	}
}

type candidate struct {
	source ConfigSource
	value  any
}

// resolve picks the first candidate in precedence order and records the
// rest as shadowed.
func resolve(key string, def any, candidates ...candidate) ResolvedValue {
	rv := ResolvedValue{Key: key, Value: def, Source: SourceDefault, Shadowed: make(map[ConfigSource]any)}
	for _, c := range candidates {
		if c.value == nil {
			continue
		}
		if rv.Source == SourceDefault {
			rv.Value = c.value
			rv.Source = c.source
			continue
		}
		rv.Shadowed[c.source] = c.value
	}
	return rv
}

func stringCandidate(source ConfigSource, s string) candidate {
	if s == "" {
		return candidate{source: source}
	}
	return candidate{source: source, value: s}
}

func stringPtrCandidate(source ConfigSource, s *string) candidate {
	if s == nil {
		return candidate{source: source}
	}
	return candidate{source: source, value: *s}
}

func boolPtrCandidate(source ConfigSource, b *bool) candidate {
	if b == nil {
		return candidate{source: source}
	}
	return candidate{source: source, value: *b}
}

// ResolveSettings resolves every setting using precedence:
// (1) flag, (2) SVCGEN_* env, (3) config file, (4) built-in default.
func ResolveSettings(layers *Layers, flags Overrides) Settings {
	if layers == nil {
		layers = &Layers{File: &Config{}, Env: &Config{}}
	}
	file, env := layers.File, layers.Env

	values := []ResolvedValue{
		resolve(KeyAuthor, project.DefaultAuthor,
			stringPtrCandidate(SourceFlag, flags.Author),
			stringCandidate(SourceEnv, env.Author),
			stringCandidate(SourceConfig, file.Author)),
		resolve(KeyEmail, project.DefaultEmail,
			stringPtrCandidate(SourceFlag, flags.Email),
			stringCandidate(SourceEnv, env.Email),
			stringCandidate(SourceConfig, file.Email)),
		resolve(KeyDescription, project.DefaultDescription,
			stringPtrCandidate(SourceFlag, flags.Description),
			stringCandidate(SourceEnv, env.Description),
			stringCandidate(SourceConfig, file.Description)),
		resolve(KeyGitInit, true,
			boolPtrCandidate(SourceFlag, flags.GitInit),
			boolPtrCandidate(SourceEnv, env.Git.Init),
			boolPtrCandidate(SourceConfig, file.Git.Init)),
		resolve(KeyLogTimestamps, true,
			boolPtrCandidate(SourceFlag, flags.Timestamps),
			boolPtrCandidate(SourceEnv, env.Log.Timestamps),
			boolPtrCandidate(SourceConfig, file.Log.Timestamps)),
	}

	return Settings{
		Author:      values[0].Value.(string),
		Email:       values[1].Value.(string),
		Description: values[2].Value.(string),
		GitInit:     values[3].Value.(bool),
		Timestamps:  values[4].Value.(bool),
		Values:      values,
	}
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) SVCGEN_CONFIG env, (3) ~/.svcgen/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvVar("config"))

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	// Resolve using precedence: flag > env > default
	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level when verbose.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
