package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/svcgen/cli/internal/capability"
	"github.com/svcgen/cli/internal/config"
	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/output"
	"github.com/svcgen/cli/internal/pipeline"
	"github.com/svcgen/cli/internal/report"
	"github.com/svcgen/cli/internal/vcs"
)

type newOptions struct {
	flags       capability.Flags
	author      string
	email       string
	description string
	dir         string
	force       bool
	noGit       bool
	dryRun      bool
	output      string
	interactive bool

	// Injected for tests.
	fs     afero.Fs
	runner vcs.CommandRunner
	prompt promptFunc
}

// NewNewCmd creates the new command.
func NewNewCmd(gc *GlobalConfig) *cobra.Command {
	return newNewCmd(gc, &newOptions{prompt: runPrompt})
}

func newNewCmd(gc *GlobalConfig, opts *newOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "new <display-name>",
		Short: "Generate a new FastAPI service",
		Long: `Generate a new FastAPI service project.

The display name is turned into a directory slug (Todo API -> todo-api) and
a Python package name (todo_api). The project is written to <dir>/<slug>.

Database, cache and containers are enabled by default; background tasks are
opt-in and require the cache.

Examples:
  # Generate with the default capabilities
  svcgen new "Todo API"

  # No Redis, no containers
  svcgen new "Todo API" --disable-cache --disable-containers

  # Celery worker
  svcgen new "Billing Service" --enable-background-tasks

  # List the files that would be written, as JSON
  svcgen new "Todo API" --dry-run -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runNew(c, gc, opts, args)
		},
	}

	addCapabilityFlags(c.Flags(), &opts.flags)
	c.Flags().StringVar(&opts.author, "author", "", "author name (env: SVCGEN_AUTHOR)")
	c.Flags().StringVar(&opts.email, "email", "", "author email (env: SVCGEN_EMAIL)")
	c.Flags().StringVar(&opts.description, "description", "", "project description (env: SVCGEN_DESCRIPTION)")
	c.Flags().StringVarP(&opts.dir, "dir", "d", ".", "parent directory of the project")
	c.Flags().BoolVar(&opts.force, "force", false, "allow writing into a non-empty directory")
	c.Flags().BoolVar(&opts.noGit, "no-git", false, "skip git initialisation (env: SVCGEN_GIT_INIT=false)")
	c.Flags().BoolVar(&opts.dryRun, "dry-run", false, "render in memory and list the files without writing")
	c.Flags().StringVarP(&opts.output, "output", "o", "text", "dry-run output format: text, json, yaml")
	c.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for the project details")

	return c
}

func runNew(c *cobra.Command, gc *GlobalConfig, opts *newOptions, args []string) error {
	if gc.LoadErr != nil {
		return gc.LoadErr
	}

	format, err := parseFormat(opts.output)
	if err != nil {
		return err
	}

	fs := c.Flags()
	overrides := config.Overrides{
		Author:      stringFlag(fs, "author", opts.author),
		Email:       stringFlag(fs, "email", opts.email),
		Description: stringFlag(fs, "description", opts.description),
	}
	if fs.Changed("no-git") {
		overrides.GitInit = output.BoolPtr(!opts.noGit)
	}
	settings := config.ResolveSettings(gc.Layers, overrides)
	config.LogResolvedValues(settings.Values)

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	flags := opts.flags
	meta := settings.Metadata()

	if opts.interactive {
		ans := &answers{
			Name:        name,
			Author:      meta.Author,
			Email:       meta.Email,
			Description: meta.Description,
			Flags:       flags,
		}
		if err := opts.prompt(ans); err != nil {
			return err
		}
		name, flags = ans.Name, ans.Flags
		meta.Author, meta.Email, meta.Description = ans.Author, ans.Email, ans.Description
	}

	if name == "" {
		return oerrors.NewConfigurationError(oerrors.StageDerivation,
			"project name is required", "name",
			`Pass a display name, e.g. svcgen new "Todo API", or use --interactive`)
	}

	pipeOpts := pipeline.Options{
		DisplayName: name,
		Metadata:    meta,
		Flags:       flags,
		Dir:         opts.dir,
		Force:       opts.force,
		InitGit:     settings.GitInit,
		Fs:          opts.fs,
		Runner:      opts.runner,
	}

	w := c.OutOrStdout()

	if opts.dryRun {
		plan, err := pipeline.Plan(pipeOpts)
		if err != nil {
			return err
		}
		return printPlan(w, plan, format)
	}

	res, err := pipeline.Generate(c.Context(), pipeOpts)
	if err != nil {
		return err
	}
	return printResult(w, res)
}

// printPlan lists the files a generation would write.
func printPlan(w io.Writer, plan *pipeline.PlanResult, format output.Format) error {
	if format != output.FormatText {
		return output.Encode(w, format, plan.Summary())
	}

	fmt.Fprintf(w, "Would create %s in %s (%s)\n\n",
		output.StyleNoun.Render(plan.Project.DisplayName),
		plan.Target,
		plan.Project.Capabilities.String())
	for _, f := range plan.Files {
		fmt.Fprintln(w, output.FormatFileLine(f.Path, output.StatusPlanned))
	}
	_, err := fmt.Fprintln(w, "\n"+output.StyleSummary.Render(fmt.Sprintf("%d files", len(plan.Files))))
	return err
}

// printResult reports a completed generation.
func printResult(w io.Writer, res *pipeline.GenerateResult) error {
	plan := res.Plan

	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Created %s in %s",
		output.StyleNoun.Render(plan.Project.DisplayName), plan.Target)))
	fmt.Fprintln(w)

	descriptions := make(map[string]string, len(plan.Files))
	for _, f := range plan.Files {
		descriptions[f.Path] = f.Description
	}
	fmt.Fprint(w, output.RenderFileTree(plan.Project.Slug, descriptions))
	fmt.Fprintln(w)

	switch res.VCS.Status {
	case vcs.StatusInitialized:
		fmt.Fprintln(w, output.FormatCheckmark("Initialized git repository"))
	case vcs.StatusFailed:
		fmt.Fprintln(w, output.FormatWarning("git initialisation failed: "+res.VCS.Message))
	default:
		if res.VCS != vcs.Disabled {
			fmt.Fprintln(w, output.FormatWarning("git initialisation skipped: "+res.VCS.Message))
		}
	}
	fmt.Fprintln(w)

	return report.Render(w, plan.Project, res.Steps)
}
