package templates

import (
	"bytes"
	"fmt"

	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/project"
)

// VerifyShared checks that every shared identifier whose requirements hold
// renders to the same literal in each listed file that was emitted.
func (r *Renderer) VerifyShared(shared []Shared, files []RenderedFile, cfg project.Config) error {
	data := cfg.TemplateData()

	byPath := make(map[string][]byte, len(files))
	for _, f := range files {
		byPath[f.Path] = f.Content
	}

	for _, s := range shared {
		if !cfg.Capabilities.Contains(s.Requires) {
			continue
		}

		valueTmpl, err := parse(s.Name, s.Value)
		if err != nil {
			return err
		}
		value, err := run(s.Name, valueTmpl, data)
		if err != nil {
			return err
		}

		for _, rawPath := range s.Files {
			pathTmpl, ok := r.reg.paths[rawPath]
			if !ok {
				return &oerrors.TemplateError{Template: rawPath, Token: s.Name, Message: "shared identifier references unknown catalog path"}
			}
			p, err := run(rawPath, pathTmpl, data)
			if err != nil {
				return err
			}

			content, emitted := byPath[string(p)]
			if !emitted {
				continue
			}
			if !bytes.Contains(content, value) {
				return &oerrors.TemplateError{
					Template: string(p),
					Token:    s.Name,
					Message:  fmt.Sprintf("shared identifier %s (%q) does not appear in the rendered file", s.Name, value),
				}
			}
		}
	}
	return nil
}
