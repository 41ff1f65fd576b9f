package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func valueOf(t *testing.T, s Settings, key string) ResolvedValue {
	t.Helper()
	for _, v := range s.Values {
		if v.Key == key {
			return v
		}
	}
	t.Fatalf("no resolved value for %s", key)
	return ResolvedValue{}
}

func TestResolveSettings_Precedence(t *testing.T) {
	layers := &Layers{
		File: &Config{Author: "File Author", Email: "file@example.com", Git: GitConfig{Init: boolPtr(false)}},
		Env:  &Config{Author: "Env Author"},
	}

	tests := []struct {
		name       string
		flags      Overrides
		key        string
		wantValue  any
		wantSource ConfigSource
		shadowed   []ConfigSource
	}{
		{
			name:       "flag beats env and config",
			flags:      Overrides{Author: strPtr("Flag Author")},
			key:        KeyAuthor,
			wantValue:  "Flag Author",
			wantSource: SourceFlag,
			shadowed:   []ConfigSource{SourceEnv, SourceConfig},
		},
		{
			name:       "env beats config",
			key:        KeyAuthor,
			wantValue:  "Env Author",
			wantSource: SourceEnv,
			shadowed:   []ConfigSource{SourceConfig},
		},
		{
			name:       "config beats default",
			key:        KeyEmail,
			wantValue:  "file@example.com",
			wantSource: SourceConfig,
		},
		{
			name:       "default",
			key:        KeyDescription,
			wantValue:  "A FastAPI project",
			wantSource: SourceDefault,
		},
		{
			name:       "bool from config",
			key:        KeyGitInit,
			wantValue:  false,
			wantSource: SourceConfig,
		},
		{
			name:       "bool flag beats config",
			flags:      Overrides{GitInit: boolPtr(true)},
			key:        KeyGitInit,
			wantValue:  true,
			wantSource: SourceFlag,
			shadowed:   []ConfigSource{SourceConfig},
		},
		{
			name:       "bool default",
			key:        KeyLogTimestamps,
			wantValue:  true,
			wantSource: SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valueOf(t, ResolveSettings(layers, tt.flags), tt.key)
			assert.Equal(t, tt.wantValue, v.Value)
			assert.Equal(t, tt.wantSource, v.Source)
			assert.Len(t, v.Shadowed, len(tt.shadowed))
			for _, s := range tt.shadowed {
				assert.Contains(t, v.Shadowed, s)
			}
		})
	}
}

func TestResolveSettings_Fields(t *testing.T) {
	s := ResolveSettings(nil, Overrides{Email: strPtr("me@example.com"), Timestamps: boolPtr(false)})

	assert.Equal(t, "Your Name", s.Author)
	assert.Equal(t, "me@example.com", s.Email)
	assert.True(t, s.GitInit)
	assert.False(t, s.Timestamps)
	assert.Len(t, s.Values, len(Keys))

	meta := s.Metadata()
	assert.Equal(t, "me@example.com", meta.Email)
	assert.Equal(t, "A FastAPI project", meta.Description)
}

func TestResolveSettings_EmptyFlagString(t *testing.T) {
	// An explicitly empty flag still wins; project.New falls back to defaults.
	s := ResolveSettings(&Layers{File: &Config{Author: "File"}, Env: &Config{}}, Overrides{Author: strPtr("")})
	assert.Equal(t, "", s.Author)
	assert.Equal(t, SourceFlag, valueOf(t, s, KeyAuthor).Source)
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("flag", func(t *testing.T) {
		t.Setenv("SVCGEN_CONFIG", "/env/config.yaml")
		res, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: "/flag/config.yaml"})
		require.NoError(t, err)
		assert.Equal(t, "/flag/config.yaml", res.ConfigPath)
		assert.Equal(t, SourceFlag, res.Source)
		assert.Equal(t, "/env/config.yaml", res.Shadowed[SourceEnv])
		assert.Contains(t, res.Shadowed, SourceDefault)
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("SVCGEN_CONFIG", "/env/config.yaml")
		res, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)
		assert.Equal(t, "/env/config.yaml", res.ConfigPath)
		assert.Equal(t, SourceEnv, res.Source)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("SVCGEN_CONFIG", "")
		res, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)
		paths, err := DefaultPaths()
		require.NoError(t, err)
		assert.Equal(t, paths.ConfigFile, res.ConfigPath)
		assert.Equal(t, SourceDefault, res.Source)
		assert.Empty(t, res.Shadowed)
	})
}
