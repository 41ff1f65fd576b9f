// Package templates holds the catalog of files a generated project is
// assembled from, and renders it against a project configuration.
package templates

import (
	"io/fs"

	"github.com/svcgen/cli/internal/capability"
)

// DefaultMode is the file mode of entries that do not set one.
const DefaultMode fs.FileMode = 0o644

// Entry is one file in the catalog.
type Entry struct {
	// Path is the output path relative to the project root. It is a
	// template rendered with the project data.
	Path string

	// Source is the template file under files/ the content is rendered from.
	Source string

	// Requires lists the capabilities that must all be enabled for the
	// entry to be emitted. Empty means always emitted.
	Requires []capability.Capability

	// Mode is the permission bits applied after writing.
	Mode fs.FileMode

	// Description is a short human-readable note shown in listings.
	Description string
}

// Shared declares an identifier that several files must spell identically.
type Shared struct {
	// Name identifies the declaration in errors.
	Name string

	// Value is a template whose rendering must appear in each listed file.
	Value string

	// Requires gates the check like Entry.Requires.
	Requires []capability.Capability

	// Files are catalog paths, unrendered. Files not emitted are skipped.
	Files []string
}

// RenderedFile is the output of rendering one entry.
type RenderedFile struct {
	// Path is slash-separated and relative to the project root.
	Path string

	Content []byte
	Mode    fs.FileMode

	// Source is the catalog source the file was rendered from.
	Source string

	// Description is copied from the catalog entry.
	Description string
}
