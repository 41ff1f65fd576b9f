package templates

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"
	"text/template"

	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/output"
	"github.com/svcgen/cli/internal/project"
)

var (
	// tokenPattern extracts the failing field from a text/template exec error.
	tokenPattern = regexp.MustCompile(`at <([^>]+)>`)

	// leftoverPattern matches a placeholder that survived rendering.
	leftoverPattern = regexp.MustCompile(`\{\{-?\s*\.[A-Za-z_][A-Za-z0-9_.]*\s*-?\}\}`)

	// actionPattern matches any template action.
	actionPattern = regexp.MustCompile(`\{\{[^}]*\}\}`)
)

// Renderer renders catalog entries against a project configuration.
type Renderer struct {
	reg *Registry
}

// NewRenderer creates a renderer over reg.
func NewRenderer(reg *Registry) *Renderer {
	return &Renderer{reg: reg}
}

// Render renders a single entry. Any placeholder that does not resolve
// against cfg fails with a TemplateError naming the entry and the token.
func (r *Renderer) Render(e Entry, cfg project.Config) (RenderedFile, error) {
	return r.render(e, cfg.TemplateData())
}

// RenderAll renders entries in order and stops at the first error.
func (r *Renderer) RenderAll(entries []Entry, cfg project.Config) ([]RenderedFile, error) {
	data := cfg.TemplateData()
	files := make([]RenderedFile, 0, len(entries))
	seen := make(map[string]string, len(entries))

	for _, e := range entries {
		f, err := r.render(e, data)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[f.Path]; dup {
			return nil, &oerrors.TemplateError{
				Template: e.Path,
				Message:  fmt.Sprintf("renders to %s, already produced by %s", f.Path, prev),
			}
		}
		seen[f.Path] = e.Path

		output.Debug("rendered template", "path", f.Path, "source", f.Source, "bytes", len(f.Content))
		files = append(files, f)
	}

	return files, nil
}

// RenderString renders an ad-hoc template string with the same strictness
// as catalog entries. name identifies the string in errors.
func (r *Renderer) RenderString(name, text string, cfg project.Config) (string, error) {
	tmpl, err := parse(name, text)
	if err != nil {
		return "", err
	}
	out, err := run(name, tmpl, cfg.TemplateData())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (r *Renderer) render(e Entry, data map[string]any) (RenderedFile, error) {
	pathTmpl, ok := r.reg.paths[e.Path]
	if !ok {
		return RenderedFile{}, &oerrors.TemplateError{Template: e.Path, Message: "entry is not in the catalog"}
	}
	source, ok := r.reg.sources[e.Source]
	if !ok {
		return RenderedFile{}, &oerrors.TemplateError{Template: e.Path, Message: "unknown source " + e.Source}
	}

	rawPath, err := run(e.Path, pathTmpl, data)
	if err != nil {
		return RenderedFile{}, err
	}
	outPath := string(rawPath)
	if err := checkRelative(outPath); err != nil || strings.TrimSpace(outPath) != outPath || outPath == "" {
		return RenderedFile{}, &oerrors.TemplateError{
			Template: e.Path,
			Message:  fmt.Sprintf("rendered path %q is not a clean relative path", outPath),
		}
	}

	content, err := run(e.Path, source, data)
	if err != nil {
		return RenderedFile{}, err
	}

	mode := e.Mode
	if mode == 0 {
		mode = DefaultMode
	}

	return RenderedFile{
		Path:        path.Clean(outPath),
		Content:     content,
		Mode:        mode,
		Source:      e.Source,
		Description: e.Description,
	}, nil
}

// run executes tmpl and scans the result for leftover placeholders.
// It always returns a *TemplateError on failure.
func run(name string, tmpl *template.Template, data map[string]any) ([]byte, error) {
	out, err := execute(tmpl, data)
	if err != nil {
		token := ""
		if m := tokenPattern.FindStringSubmatch(err.Error()); m != nil {
			token = m[1]
		}
		return nil, &oerrors.TemplateError{
			Template: name,
			Token:    token,
			Message:  "unresolved placeholder",
			Cause:    err,
		}
	}

	if token := leftover(out); token != "" {
		return nil, &oerrors.TemplateError{
			Template: name,
			Token:    token,
			Message:  "placeholder left in rendered output",
		}
	}
	return out, nil
}

// leftover returns the first {{ .X }} token in b that is not part of a
// ${{ ... }} expression, or "".
func leftover(b []byte) string {
	for _, loc := range leftoverPattern.FindAllIndex(b, -1) {
		if loc[0] > 0 && b[loc[0]-1] == '$' {
			continue
		}
		return string(bytes.TrimSpace(b[loc[0]:loc[1]]))
	}
	return ""
}
