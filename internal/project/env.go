package project

import (
	"fmt"
	"strings"

	"github.com/svcgen/cli/internal/capability"
)

// EnvNames are the settings keys shared by the generated config module,
// the dotenv files, the compose file and the Kubernetes manifests.
type EnvNames struct {
	ProjectName         string
	Environment         string
	SecretKey           string
	DatabaseURL         string
	RedisURL            string
	CeleryBrokerURL     string
	CeleryResultBackend string
}

// Env is the single source of settings key names.
var Env = EnvNames{
	ProjectName:         "PROJECT_NAME",
	Environment:         "ENVIRONMENT",
	SecretKey:           "SECRET_KEY",
	DatabaseURL:         "DATABASE_URL",
	RedisURL:            "REDIS_URL",
	CeleryBrokerURL:     "CELERY_BROKER_URL",
	CeleryResultBackend: "CELERY_RESULT_BACKEND",
}

func (e EnvNames) data() map[string]any {
	return map[string]any{
		"ProjectName":         e.ProjectName,
		"Environment":         e.Environment,
		"SecretKey":           e.SecretKey,
		"DatabaseURL":         e.DatabaseURL,
		"RedisURL":            e.RedisURL,
		"CeleryBrokerURL":     e.CeleryBrokerURL,
		"CeleryResultBackend": e.CeleryResultBackend,
	}
}

// Service host names inside the compose network and the cluster.
const (
	DatabaseHost = "db"
	CacheHost    = "redis"
)

// SecretKey returns the placeholder secret written to the dotenv files. It is
// derived from the project ID so repeated generations are byte-identical.
func (c Config) SecretKey() string {
	return "insecure-change-me-" + strings.ReplaceAll(c.ProjectID, "-", "")
}

// DatabaseURL returns the PostgreSQL URL for host.
func (c Config) DatabaseURL(host string) string {
	return fmt.Sprintf("postgresql://%s:%s@%s:5432/%s", c.PackageName, c.PackageName, host, c.PackageName)
}

// CacheURL returns the Redis URL of database index db on host.
func (c Config) CacheURL(host string, db int) string {
	return fmt.Sprintf("redis://%s:6379/%d", host, db)
}

// TemplateData returns the values catalog templates are rendered against.
// Capability-derived values are present only when their capability is on,
// so referencing one outside its capability gate fails rendering.
func (c Config) TemplateData() map[string]any {
	data := map[string]any{
		"ProjectName":   c.DisplayName,
		"Slug":          c.Slug,
		"PackageName":   c.PackageName,
		"Title":         c.Title,
		"ImageName":     c.ImageName,
		"ProjectID":     c.ProjectID,
		"Author":        c.Author,
		"Email":         c.Email,
		"Description":   c.Description,
		"Version":       c.Version,
		"Port":          c.Port,
		"APIPrefix":     APIPrefix,
		"PythonVersion": PythonVersion,
		"SecretKey":     c.SecretKey(),
		"Env":           Env.data(),

		"UseDatabase":        c.Has(capability.Database),
		"UseCache":           c.Has(capability.Cache),
		"UseContainers":      c.Has(capability.Containers),
		"UseBackgroundTasks": c.Has(capability.BackgroundTasks),
	}

	if c.Has(capability.Database) {
		data["Database"] = map[string]any{
			"User":         c.PackageName,
			"Password":     c.PackageName,
			"Name":         c.PackageName,
			"URL":          c.DatabaseURL("localhost"),
			"ContainerURL": c.DatabaseURL(DatabaseHost),
		}
	}
	if c.Has(capability.Cache) {
		data["Cache"] = map[string]any{
			"URL":          c.CacheURL("localhost", 0),
			"ContainerURL": c.CacheURL(CacheHost, 0),
		}
	}
	if c.Has(capability.BackgroundTasks) {
		data["Broker"] = map[string]any{
			"URL":                    c.CacheURL("localhost", 1),
			"ResultBackend":          c.CacheURL("localhost", 2),
			"ContainerURL":           c.CacheURL(CacheHost, 1),
			"ContainerResultBackend": c.CacheURL(CacheHost, 2),
		}
	}

	return data
}
