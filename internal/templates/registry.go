package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/svcgen/cli/internal/capability"
	oerrors "github.com/svcgen/cli/internal/errors"
)

const (
	catalogFile = "catalog.yaml"
	sourceDir   = "files"
)

// catalogDoc is the on-disk shape of catalog.yaml.
type catalogDoc struct {
	Templates []entryDoc  `yaml:"templates"`
	Shared    []sharedDoc `yaml:"shared"`
}

type entryDoc struct {
	Path        string   `yaml:"path"`
	Source      string   `yaml:"source"`
	Description string   `yaml:"description"`
	Requires    []string `yaml:"requires"`
	Mode        string   `yaml:"mode"`
}

type sharedDoc struct {
	Name     string   `yaml:"name"`
	Value    string   `yaml:"value"`
	Requires []string `yaml:"requires"`
	Files    []string `yaml:"files"`
}

// Registry is the read-only, ordered template catalog.
type Registry struct {
	entries []Entry
	shared  []Shared

	// sources maps a source name to its parsed template.
	sources map[string]*template.Template

	// paths maps a raw entry path to its parsed template.
	paths map[string]*template.Template
}

// LoadRegistry reads catalog.yaml and the sources under files/ from fsys.
// The catalog is checked against the embedded CUE schema and every source
// is parsed up front, so authoring defects surface before any rendering.
func LoadRegistry(fsys fs.FS) (*Registry, error) {
	raw, err := fs.ReadFile(fsys, catalogFile)
	if err != nil {
		return nil, catalogError(catalogFile, "reading catalog", err)
	}

	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, catalogError(catalogFile, "decoding catalog", err)
	}

	reg := &Registry{
		sources: make(map[string]*template.Template),
		paths:   make(map[string]*template.Template),
	}

	for _, ed := range doc.Templates {
		entry, err := reg.addEntry(fsys, ed)
		if err != nil {
			return nil, err
		}
		reg.entries = append(reg.entries, entry)
	}

	for _, sd := range doc.Shared {
		shared, err := reg.buildShared(sd)
		if err != nil {
			return nil, err
		}
		reg.shared = append(reg.shared, shared)
	}

	return reg, nil
}

// validateSchema unifies the raw catalog with #Catalog.
func validateSchema(raw []byte) error {
	var data any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return catalogError(catalogFile, "decoding catalog", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileBytes(catalogSchema, cue.Filename("catalog.cue"))
	if schema.Err() != nil {
		return catalogError("catalog.cue", "compiling catalog schema", schema.Err())
	}

	value := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(ctx.Encode(data))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		msgs := make([]string, 0, len(cueerrors.Errors(err)))
		for _, e := range cueerrors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return &oerrors.TemplateError{
			Template: catalogFile,
			Message:  "catalog does not match schema: " + strings.Join(msgs, "; "),
		}
	}
	return nil
}

func (r *Registry) addEntry(fsys fs.FS, ed entryDoc) (Entry, error) {
	if _, dup := r.paths[ed.Path]; dup {
		return Entry{}, catalogError(ed.Path, "duplicate catalog path", nil)
	}
	if err := checkRelative(ed.Path); err != nil {
		return Entry{}, catalogError(ed.Path, err.Error(), nil)
	}

	requires, err := parseCapabilities(ed.Requires)
	if err != nil {
		return Entry{}, catalogError(ed.Path, "invalid requirement", err)
	}

	mode := DefaultMode
	if ed.Mode != "" {
		bits, err := strconv.ParseUint(ed.Mode, 8, 32)
		if err != nil {
			return Entry{}, catalogError(ed.Path, "invalid mode "+ed.Mode, err)
		}
		mode = fs.FileMode(bits)
	}

	pathTmpl, err := parse(ed.Path, ed.Path)
	if err != nil {
		return Entry{}, err
	}
	r.paths[ed.Path] = pathTmpl

	if _, ok := r.sources[ed.Source]; !ok {
		content, err := fs.ReadFile(fsys, path.Join(sourceDir, ed.Source))
		if err != nil {
			return Entry{}, catalogError(ed.Source, "reading template source", err)
		}
		tmpl, err := parse(ed.Source, string(content))
		if err != nil {
			return Entry{}, err
		}
		r.sources[ed.Source] = tmpl
	}

	return Entry{
		Path:        ed.Path,
		Source:      ed.Source,
		Requires:    requires,
		Mode:        mode,
		Description: ed.Description,
	}, nil
}

func (r *Registry) buildShared(sd sharedDoc) (Shared, error) {
	requires, err := parseCapabilities(sd.Requires)
	if err != nil {
		return Shared{}, catalogError(sd.Name, "invalid requirement", err)
	}
	if _, err := parse(sd.Name, sd.Value); err != nil {
		return Shared{}, err
	}
	for _, f := range sd.Files {
		if _, ok := r.paths[f]; !ok {
			return Shared{}, catalogError(sd.Name, "shared identifier references unknown catalog path "+f, nil)
		}
	}
	return Shared{
		Name:     sd.Name,
		Value:    sd.Value,
		Requires: requires,
		Files:    slices.Clone(sd.Files),
	}, nil
}

// Entries returns a copy of the catalog in order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		e.Requires = slices.Clone(e.Requires)
		out[i] = e
	}
	return out
}

// Shared returns a copy of the shared identifier declarations.
func (r *Registry) Shared() []Shared {
	out := make([]Shared, len(r.shared))
	for i, s := range r.shared {
		s.Requires = slices.Clone(s.Requires)
		s.Files = slices.Clone(s.Files)
		out[i] = s
	}
	return out
}

// Select returns the entries whose requirements are all in set, in catalog
// order.
func (r *Registry) Select(set capability.Set) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if set.Contains(e.Requires) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of catalog entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

func parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(funcs).Parse(text)
	if err != nil {
		return nil, &oerrors.TemplateError{
			Template: name,
			Message:  "parsing template",
			Cause:    err,
		}
	}
	return tmpl, nil
}

func parseCapabilities(names []string) ([]capability.Capability, error) {
	var out []capability.Capability
	for _, n := range names {
		c, err := capability.Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// checkRelative rejects absolute paths and paths escaping the project root.
// Template actions are blanked first so "{{ .PackageName }}/x" is judged by
// its literal parts.
func checkRelative(p string) error {
	literal := actionPattern.ReplaceAllString(p, "x")
	switch {
	case path.IsAbs(literal):
		return fmt.Errorf("path must be relative")
	case path.Clean(literal) != literal:
		return fmt.Errorf("path must be clean")
	case literal == ".." || strings.HasPrefix(literal, "../"):
		return fmt.Errorf("path must stay inside the project root")
	}
	return nil
}

func catalogError(name, msg string, cause error) error {
	return &oerrors.TemplateError{Template: name, Message: msg, Cause: cause}
}

// execute runs tmpl against data into a fresh buffer.
func execute(tmpl *template.Template, data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
