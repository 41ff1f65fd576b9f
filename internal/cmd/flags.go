package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/svcgen/cli/internal/capability"
	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/output"
)

// capabilityFlagNames are the switches bound by addCapabilityFlags.
var capabilityFlagNames = []string{
	"disable-database",
	"disable-cache",
	"disable-containers",
	"enable-background-tasks",
}

// addCapabilityFlags binds the capability switches to f.
func addCapabilityFlags(fs *pflag.FlagSet, f *capability.Flags) {
	fs.BoolVar(&f.DisableDatabase, "disable-database", false, "omit PostgreSQL, SQLAlchemy and Alembic")
	fs.BoolVar(&f.DisableCache, "disable-cache", false, "omit Redis")
	fs.BoolVar(&f.DisableContainers, "disable-containers", false, "omit Dockerfile, compose and Kubernetes manifests")
	fs.BoolVar(&f.EnableBackgroundTasks, "enable-background-tasks", false, "add a Celery worker (requires the cache)")
}

// capabilityFlagsChanged reports whether any capability switch was given.
func capabilityFlagsChanged(fs *pflag.FlagSet) bool {
	for _, name := range capabilityFlagNames {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// parseFormat validates an --output value.
func parseFormat(s string) (output.Format, error) {
	format, ok := output.ParseFormat(s)
	if !ok {
		return "", oerrors.NewConfigurationError(oerrors.StageResolution,
			"unknown output format "+`"`+s+`"`, "--output",
			"Valid formats: "+strings.Join(output.ValidFormats(), ", "))
	}
	return format, nil
}

// stringFlag returns a pointer to value when the flag was set explicitly.
func stringFlag(fs *pflag.FlagSet, name, value string) *string {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}
