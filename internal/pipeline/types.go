package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/svcgen/cli/internal/capability"
	"github.com/svcgen/cli/internal/materialize"
	"github.com/svcgen/cli/internal/project"
	"github.com/svcgen/cli/internal/report"
	"github.com/svcgen/cli/internal/templates"
	"github.com/svcgen/cli/internal/vcs"
)

// Options configures a generation run.
type Options struct {
	// DisplayName is the human-readable project name.
	DisplayName string

	// Metadata carries author, email and description overrides.
	Metadata project.Metadata

	// Flags are the capability switches from the command line.
	Flags capability.Flags

	// Dir is the parent directory; the project is created in Dir/<slug>.
	Dir string

	// Force allows writing into a non-empty target directory.
	Force bool

	// InitGit runs git init/add/commit after writing.
	InitGit bool

	// Fs is the filesystem to write to. Nil uses the OS filesystem.
	Fs afero.Fs

	// Runner runs git. Nil uses the real runner.
	Runner vcs.CommandRunner

	// Registry is the template catalog. Nil uses the embedded catalog.
	Registry *templates.Registry
}

// PlanResult is a fully rendered project that has not been written yet.
type PlanResult struct {
	Project project.Config
	Target  string
	Files   []templates.RenderedFile
}

// GenerateResult reports a completed generation.
type GenerateResult struct {
	Plan    *PlanResult
	Written *materialize.Result
	VCS     vcs.Result
	Steps   []report.Step
}

// PlannedFile is the listing form of a rendered file.
type PlannedFile struct {
	Path string `json:"path" yaml:"path"`
	Mode string `json:"mode" yaml:"mode"`
	Size int    `json:"size" yaml:"size"`
}

// Summary is the listing form of a plan, printed by dry runs.
type Summary struct {
	Name         string        `json:"name" yaml:"name"`
	Slug         string        `json:"slug" yaml:"slug"`
	Package      string        `json:"package" yaml:"package"`
	ProjectID    string        `json:"projectId" yaml:"projectId"`
	Target       string        `json:"target" yaml:"target"`
	Capabilities []string      `json:"capabilities" yaml:"capabilities"`
	Files        []PlannedFile `json:"files" yaml:"files"`
}

// Paths returns the relative paths of the planned files in emission order.
func (p *PlanResult) Paths() []string {
	out := make([]string, len(p.Files))
	for i, f := range p.Files {
		out[i] = f.Path
	}
	return out
}

// Summary returns the listing form of the plan.
func (p *PlanResult) Summary() Summary {
	caps := make([]string, 0)
	for _, c := range p.Project.Capabilities.List() {
		caps = append(caps, string(c))
	}

	files := make([]PlannedFile, len(p.Files))
	for i, f := range p.Files {
		mode := f.Mode
		if mode == 0 {
			mode = templates.DefaultMode
		}
		files[i] = PlannedFile{
			Path: f.Path,
			Mode: fmt.Sprintf("%04o", uint32(mode.Perm())),
			Size: len(f.Content),
		}
	}

	return Summary{
		Name:         p.Project.DisplayName,
		Slug:         p.Project.Slug,
		Package:      p.Project.PackageName,
		ProjectID:    p.Project.ProjectID,
		Target:       filepath.ToSlash(p.Target),
		Capabilities: caps,
		Files:        files,
	}
}
