// Package config provides configuration loading and management.
package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/svcgen/cli/internal/project"
)

// Configuration keys, dotted as in the YAML file.
const (
	KeyAuthor        = "author"
	KeyEmail         = "email"
	KeyDescription   = "description"
	KeyGitInit       = "git.init"
	KeyLogTimestamps = "log.timestamps"
)

// Keys lists every configuration key.
var Keys = []string{KeyAuthor, KeyEmail, KeyDescription, KeyGitInit, KeyLogTimestamps}

// GitConfig contains repository initialisation settings.
type GitConfig struct {
	// Init controls whether new projects get a git repository.
	// Env: SVCGEN_GIT_INIT, Default: true. Override with --no-git.
	Init *bool `json:"init,omitempty" yaml:"init,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Config represents the svcgen user defaults.
// Loaded from ~/.svcgen/config.yaml, validated against embedded CUE schema.
type Config struct {
	// Author is written into generated metadata and the initial commit.
	// Env: SVCGEN_AUTHOR
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Email is the author's address.
	// Env: SVCGEN_EMAIL
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Description is the default project description.
	// Env: SVCGEN_DESCRIPTION
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Git GitConfig `json:"git,omitempty" yaml:"git,omitempty"`

	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `svcgen config init` to generate the initial config file.
func DefaultConfig() *Config {
	enabled := true
	timestamps := true
	return &Config{
		Author:      project.DefaultAuthor,
		Email:       project.DefaultEmail,
		Description: project.DefaultDescription,
		Git:         GitConfig{Init: &enabled},
		Log:         LogConfig{Timestamps: &timestamps},
	}
}

const fileHeader = `# svcgen user defaults.
# Command-line flags and SVCGEN_* environment variables take precedence.
`

// Marshal renders cfg as a commented YAML document.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
