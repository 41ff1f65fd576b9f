// Package testutil provides test helpers shared across packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/svcgen/cli/internal/capability"
	"github.com/svcgen/cli/internal/identity"
	"github.com/svcgen/cli/internal/project"
)

// Metadata is the author block used by tests.
var Metadata = project.Metadata{
	Author: "Jane Doe",
	Email:  "jane@example.com",
}

// Config builds a project configuration for name with the given flags,
// failing the test if derivation or resolution fails.
func Config(t *testing.T, name string, flags capability.Flags) project.Config {
	t.Helper()
	ids, err := identity.Derive(name)
	if err != nil {
		t.Fatalf("deriving identifiers for %q: %v", name, err)
	}
	set, err := capability.Resolve(flags)
	if err != nil {
		t.Fatalf("resolving capabilities: %v", err)
	}
	cfg, err := project.New(ids, set, Metadata)
	if err != nil {
		t.Fatalf("building project config: %v", err)
	}
	return cfg
}

// ValidFlags returns every flag combination the resolver accepts.
func ValidFlags() []capability.Flags {
	var out []capability.Flags
	for mask := 0; mask < 16; mask++ {
		f := capability.Flags{
			DisableDatabase:       mask&1 != 0,
			DisableCache:          mask&2 != 0,
			DisableContainers:     mask&4 != 0,
			EnableBackgroundTasks: mask&8 != 0,
		}
		if f.EnableBackgroundTasks && f.DisableCache {
			continue
		}
		out = append(out, f)
	}
	return out
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadTree returns the contents of every regular file under root keyed by
// slash-separated relative path.
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("reading tree %s: %v", root, err)
	}
	return out
}
