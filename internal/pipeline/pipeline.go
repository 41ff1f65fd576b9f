// Package pipeline runs project generation end to end.
package pipeline

import (
	"context"
	"path/filepath"

	"github.com/svcgen/cli/internal/capability"
	"github.com/svcgen/cli/internal/identity"
	"github.com/svcgen/cli/internal/materialize"
	"github.com/svcgen/cli/internal/output"
	"github.com/svcgen/cli/internal/project"
	"github.com/svcgen/cli/internal/report"
	"github.com/svcgen/cli/internal/templates"
	"github.com/svcgen/cli/internal/vcs"
)

// Plan renders the whole project in memory. It touches no disk.
//
// Phase sequence:
//  1. DERIVATION:  identity.Derive() -> identity.Identifiers
//  2. RESOLUTION:  capability.Resolve() -> capability.Set
//  3. CONFIG:      project.New() -> project.Config
//  4. SELECTION:   Registry.Select() -> []templates.Entry
//  5. RENDERING:   Renderer.RenderAll(), LintAll(), VerifyShared()
//
// Any error aborts the plan; errors carry the stage they belong to.
func Plan(opts Options) (*PlanResult, error) {
	// Phase 1: DERIVATION
	ids, err := identity.Derive(opts.DisplayName)
	if err != nil {
		return nil, err
	}

	// Phase 2: RESOLUTION
	caps, err := capability.Resolve(opts.Flags)
	if err != nil {
		return nil, err
	}

	// Phase 3: CONFIG
	cfg, err := project.New(ids, caps, opts.Metadata)
	if err != nil {
		return nil, err
	}

	output.Debug("project derived",
		"slug", cfg.Slug,
		"package", cfg.PackageName,
		"capabilities", caps.String(),
	)

	// Phase 4: SELECTION
	reg := opts.Registry
	if reg == nil {
		if reg, err = templates.Default(); err != nil {
			return nil, err
		}
	}
	entries := reg.Select(caps)

	// Phase 5: RENDERING
	renderer := templates.NewRenderer(reg)
	files, err := renderer.RenderAll(entries, cfg)
	if err != nil {
		return nil, err
	}
	if err := templates.LintAll(files); err != nil {
		return nil, err
	}
	if err := renderer.VerifyShared(reg.Shared(), files, cfg); err != nil {
		return nil, err
	}

	output.Debug("project planned", "files", len(files), "catalog", reg.Len())

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	return &PlanResult{
		Project: cfg,
		Target:  filepath.Join(dir, cfg.Slug),
		Files:   files,
	}, nil
}

// Generate plans the project, writes it and optionally initialises git.
// Nothing is written unless planning succeeds.
func Generate(ctx context.Context, opts Options) (*GenerateResult, error) {
	plan, err := Plan(opts)
	if err != nil {
		return nil, err
	}

	m := materialize.New(opts.Fs, plan.Target, opts.Force)
	if err := m.CheckTarget(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	written, err := m.Write(plan.Files)
	if err != nil {
		return nil, err
	}

	output.Debug("project written", "target", plan.Target, "files", len(written.Files))

	vcsResult := vcs.Disabled
	if opts.InitGit {
		runner := opts.Runner
		if runner == nil {
			runner = vcs.NewRealRunner()
		}
		err := output.RunWithSpinner(ctx, func() error {
			vcsResult = vcs.Init(ctx, runner, plan.Target, plan.Project)
			return nil
		}, output.WithTitle("Initializing git repository..."))
		if err != nil {
			vcsResult = vcs.Result{Status: vcs.StatusFailed, Message: err.Error()}
		}
	}

	return &GenerateResult{
		Plan:    plan,
		Written: written,
		VCS:     vcsResult,
		Steps:   report.NextSteps(plan.Project),
	}, nil
}
