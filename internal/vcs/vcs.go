// Package vcs initialises a git repository in a generated project.
package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/svcgen/cli/internal/output"
	"github.com/svcgen/cli/internal/project"
)

// Status is the outcome of repository initialisation.
type Status string

const (
	StatusInitialized Status = "initialized"
	StatusSkipped     Status = "skipped"
	StatusFailed      Status = "failed"
)

// Result reports what Init did. Init never fails the generation; the caller
// decides how to present a skipped or failed result.
type Result struct {
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Disabled is the result when initialisation was not requested.
var Disabled = Result{Status: StatusSkipped, Message: "disabled"}

// CommitMessage returns the message of the initial commit.
func CommitMessage(cfg project.Config) string {
	return fmt.Sprintf("Initial commit: %s service scaffold", cfg.Title)
}

// Init runs git init, add and commit in dir.
func Init(ctx context.Context, runner CommandRunner, dir string, cfg project.Config) Result {
	if _, err := runner.LookPath("git"); err != nil {
		output.Debug("git not found", "err", err)
		return Result{Status: StatusSkipped, Message: "git is not installed"}
	}

	opts := RunOpts{
		Dir: dir,
		Env: map[string]string{
			"GIT_AUTHOR_NAME":     cfg.Author,
			"GIT_AUTHOR_EMAIL":    cfg.Email,
			"GIT_COMMITTER_NAME":  cfg.Author,
			"GIT_COMMITTER_EMAIL": cfg.Email,
		},
	}

	steps := [][]string{
		{"init", "--quiet"},
		{"add", "."},
		{"commit", "--quiet", "-m", CommitMessage(cfg)},
	}

	for _, args := range steps {
		output.Debug("running git", "args", strings.Join(args, " "), "dir", dir)

		res, err := runner.Run(ctx, "git", args, opts)
		if err != nil {
			return Result{Status: StatusFailed, Message: fmt.Sprintf("git %s: %v", args[0], err)}
		}
		if res.ExitCode != 0 {
			detail := strings.TrimSpace(res.Stderr)
			if detail == "" {
				detail = fmt.Sprintf("exit code %d", res.ExitCode)
			}
			return Result{Status: StatusFailed, Message: fmt.Sprintf("git %s: %s", args[0], detail)}
		}
	}

	return Result{Status: StatusInitialized, Message: "created initial commit"}
}
