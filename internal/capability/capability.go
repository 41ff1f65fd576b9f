// Package capability resolves feature flags into the set of capabilities that
// gate which templates a generation emits.
package capability

import (
	"fmt"
	"slices"
	"strings"

	oerrors "github.com/svcgen/cli/internal/errors"
)

// Capability is an independently togglable feature area.
type Capability string

const (
	// Database adds PostgreSQL, SQLAlchemy and Alembic.
	Database Capability = "database"

	// Cache adds Redis.
	Cache Capability = "cache"

	// Containers adds Dockerfile, compose file and Kubernetes manifests.
	Containers Capability = "containers"

	// BackgroundTasks adds a Celery worker. Requires Cache as its broker.
	BackgroundTasks Capability = "background_tasks"
)

// All returns every capability in canonical order.
func All() []Capability {
	return []Capability{Database, Cache, Containers, BackgroundTasks}
}

// Parse returns the capability named s.
func Parse(s string) (Capability, error) {
	c := Capability(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(All(), c) {
		return "", fmt.Errorf("unknown capability %q; valid capabilities: %s", s, strings.Join(Names(), ", "))
	}
	return c, nil
}

// Names returns the names of all capabilities in canonical order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return names
}

// Set is an immutable set of enabled capabilities.
type Set struct {
	enabled map[Capability]bool
}

// NewSet returns a set holding caps.
func NewSet(caps ...Capability) Set {
	enabled := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		enabled[c] = true
	}
	return Set{enabled: enabled}
}

// Has reports whether c is enabled.
func (s Set) Has(c Capability) bool {
	return s.enabled[c]
}

// Contains reports whether every capability in required is enabled.
// An empty requirement is always satisfied.
func (s Set) Contains(required []Capability) bool {
	for _, c := range required {
		if !s.enabled[c] {
			return false
		}
	}
	return true
}

// List returns the enabled capabilities in canonical order.
func (s Set) List() []Capability {
	var out []Capability
	for _, c := range All() {
		if s.enabled[c] {
			out = append(out, c)
		}
	}
	return out
}

// String renders the set as a comma-separated list, or "none".
func (s Set) String() string {
	list := s.List()
	if len(list) == 0 {
		return "none"
	}
	parts := make([]string, len(list))
	for i, c := range list {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// Flags are the explicit opt-outs and opt-ins a user passes.
type Flags struct {
	DisableDatabase       bool
	DisableCache          bool
	DisableContainers     bool
	EnableBackgroundTasks bool
}

// Resolve applies flags to the defaults (database, cache and containers on,
// background tasks off). Background tasks with the cache disabled is rejected.
func Resolve(flags Flags) (Set, error) {
	if flags.EnableBackgroundTasks && flags.DisableCache {
		return Set{}, oerrors.NewConfigurationError(oerrors.StageResolution,
			"--enable-background-tasks requires the Redis broker that --disable-cache removes",
			"--enable-background-tasks, --disable-cache",
			"Drop --disable-cache, or drop --enable-background-tasks")
	}

	var caps []Capability
	if !flags.DisableDatabase {
		caps = append(caps, Database)
	}
	if !flags.DisableCache {
		caps = append(caps, Cache)
	}
	if !flags.DisableContainers {
		caps = append(caps, Containers)
	}
	if flags.EnableBackgroundTasks {
		caps = append(caps, BackgroundTasks)
	}
	return NewSet(caps...), nil
}
