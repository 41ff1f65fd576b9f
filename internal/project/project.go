// Package project holds the immutable configuration of one generation run.
package project

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/svcgen/cli/internal/capability"
	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/identity"
)

// Defaults applied when metadata is not supplied.
const (
	DefaultAuthor      = "Your Name"
	DefaultEmail       = "your.email@example.com"
	DefaultDescription = "A FastAPI project"

	// InitialVersion is the version the generated project starts at.
	InitialVersion = "0.1.0"

	// DefaultPort is the port the generated API listens on.
	DefaultPort = 8000

	// APIPrefix is the mount point of the versioned API router.
	APIPrefix = "/api/v1"

	// PythonVersion is the interpreter the generated project targets.
	PythonVersion = "3.11"
)

// Metadata is the free-text part of a project, supplied by the user.
type Metadata struct {
	Author      string
	Email       string
	Description string
}

// Config is the immutable description of the project being generated.
// It is created once per invocation by New and passed by value.
type Config struct {
	identity.Identifiers

	Author      string
	Email       string
	Description string
	Version     string
	Port        int

	Capabilities capability.Set
}

// New builds a Config from derived identifiers, resolved capabilities and
// user metadata. Blank metadata fields take their defaults.
func New(ids identity.Identifiers, caps capability.Set, meta Metadata) (Config, error) {
	cfg := Config{
		Identifiers:  ids,
		Author:       orDefault(meta.Author, DefaultAuthor),
		Email:        orDefault(meta.Email, DefaultEmail),
		Description:  orDefault(meta.Description, DefaultDescription),
		Version:      InitialVersion,
		Port:         DefaultPort,
		Capabilities: caps,
	}

	for _, f := range []struct{ field, value string }{
		{"name", cfg.DisplayName},
		{"author", cfg.Author},
		{"email", cfg.Email},
		{"description", cfg.Description},
	} {
		if err := checkText(f.field, f.value); err != nil {
			return Config{}, err
		}
	}

	addr, err := mail.ParseAddress(cfg.Email)
	if err != nil || addr.Address != cfg.Email {
		return Config{}, oerrors.NewConfigurationError(oerrors.StageDerivation,
			"email "+`"`+cfg.Email+`"`+" is not a valid address", "email",
			"Pass a bare address, e.g. --email jane@example.com")
	}

	return cfg, nil
}

// Has reports whether capability want is enabled for this project.
func (c Config) Has(want capability.Capability) bool {
	return c.Capabilities.Has(want)
}

// checkText rejects user text that cannot be carried into the generated
// files: invalid UTF-8, control or other non-printing characters, and
// template delimiters.
func checkText(field, value string) error {
	var reason string
	if !utf8.ValidString(value) {
		reason = "is not valid UTF-8"
	} else if i := strings.IndexFunc(value, nonPrinting); i >= 0 {
		r, _ := utf8.DecodeRuneInString(value[i:])
		reason = fmt.Sprintf("contains the non-printing character %U", r)
	} else if strings.Contains(value, "{{") || strings.Contains(value, "}}") {
		reason = `contains a template delimiter ("{{" or "}}")`
	} else {
		return nil
	}
	return oerrors.NewConfigurationError(oerrors.StageDerivation,
		field+" "+strconv.Quote(value)+" "+reason, field,
		"Use a single line of printable text")
}

func nonPrinting(r rune) bool {
	return unicode.IsControl(r) || (!unicode.IsPrint(r) && !unicode.IsSpace(r))
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
