package cmd

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svcgen/cli/internal/capability"
	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/pipeline"
)

func newTestCmd(opts *newOptions) (*GlobalConfig, *newOptions) {
	if opts.fs == nil {
		opts.fs = afero.NewMemMapFs()
	}
	if opts.runner == nil {
		opts.runner = &stubRunner{}
	}
	return &GlobalConfig{}, opts
}

func TestNew_DryRunJSON(t *testing.T) {
	gc, opts := newTestCmd(&newOptions{})
	out, err := execute(t, newNewCmd(gc, opts),
		"Todo API", "--disable-cache", "--dry-run", "-o", "json", "--dir", "/work")
	require.NoError(t, err)

	var summary pipeline.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "todo-api", summary.Slug)
	assert.Equal(t, "todo_api", summary.Package)
	assert.Equal(t, filepath.Join("/work", "todo-api"), summary.Target)
	assert.Equal(t, []string{"database", "containers"}, summary.Capabilities)

	paths := make([]string, len(summary.Files))
	for i, f := range summary.Files {
		paths[i] = f.Path
	}
	assert.Contains(t, paths, "todo_api/main.py")
	assert.Contains(t, paths, "alembic.ini")
	assert.NotContains(t, paths, "todo_api/core/cache.py")

	exists, err := afero.DirExists(opts.fs, "/work/todo-api")
	require.NoError(t, err)
	assert.False(t, exists, "dry run must not write")
}

func TestNew_DryRunText(t *testing.T) {
	gc, opts := newTestCmd(&newOptions{})
	out, err := execute(t, newNewCmd(gc, opts), "Todo API", "--dry-run", "--disable-containers")
	require.NoError(t, err)

	assert.Contains(t, out, "Would create")
	assert.Contains(t, out, "todo_api/core/cache.py")
	assert.NotContains(t, out, "Dockerfile")
	assert.Contains(t, out, "files")
}

func TestNew_Generates(t *testing.T) {
	runner := &stubRunner{}
	gc, opts := newTestCmd(&newOptions{runner: runner})
	out, err := execute(t, newNewCmd(gc, opts),
		"Billing Service", "--enable-background-tasks", "--dir", "/work",
		"--author", "Ada", "--email", "ada@example.com")
	require.NoError(t, err)

	content, err := afero.ReadFile(opts.fs, "/work/billing-service/billing_service/worker/celery_app.py")
	require.NoError(t, err)
	assert.NotEmpty(t, content)

	readme, err := afero.ReadFile(opts.fs, "/work/billing-service/README.md")
	require.NoError(t, err)
	assert.Contains(t, string(readme), "Ada")

	assert.Contains(t, out, "Created")
	assert.Contains(t, out, "billing-service")
	assert.Contains(t, out, "Initialized git repository")
	assert.Contains(t, out, "make worker")
	assert.Contains(t, out, "Next steps:")
	assert.Len(t, runner.calls, 3)
}

func TestNew_NoGit(t *testing.T) {
	runner := &stubRunner{}
	gc, opts := newTestCmd(&newOptions{runner: runner})
	out, err := execute(t, newNewCmd(gc, opts), "Todo API", "--dir", "/work", "--no-git")
	require.NoError(t, err)

	assert.Empty(t, runner.calls)
	assert.NotContains(t, out, "git initialisation")
}

func TestNew_GitMissingIsReported(t *testing.T) {
	gc, opts := newTestCmd(&newOptions{runner: &stubRunner{missing: true}})
	out, err := execute(t, newNewCmd(gc, opts), "Todo API", "--dir", "/work")
	require.NoError(t, err)
	assert.Contains(t, out, "git initialisation skipped")
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		setup    func(fs afero.Fs)
		wantCode int
	}{
		{
			name:     "missing name",
			args:     []string{"--dir", "/work"},
			wantCode: oerrors.ExitConfigurationError,
		},
		{
			name:     "name without letters",
			args:     []string{"!!!", "--dir", "/work"},
			wantCode: oerrors.ExitConfigurationError,
		},
		{
			name:     "background tasks without cache",
			args:     []string{"Todo API", "--enable-background-tasks", "--disable-cache", "--dir", "/work"},
			wantCode: oerrors.ExitConfigurationError,
		},
		{
			name:     "unknown output format",
			args:     []string{"Todo API", "--dry-run", "-o", "xml"},
			wantCode: oerrors.ExitConfigurationError,
		},
		{
			name: "non-empty target",
			args: []string{"Todo API", "--dir", "/work"},
			setup: func(fs afero.Fs) {
				_ = afero.WriteFile(fs, "/work/todo-api/keep.txt", []byte("x"), 0o644)
			},
			wantCode: oerrors.ExitIOError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc, opts := newTestCmd(&newOptions{})
			if tt.setup != nil {
				tt.setup(opts.fs)
			}
			_, err := execute(t, newNewCmd(gc, opts), tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, oerrors.ExitCodeFromError(err))
		})
	}
}

func TestNew_ForceWritesIntoNonEmptyTarget(t *testing.T) {
	gc, opts := newTestCmd(&newOptions{})
	require.NoError(t, afero.WriteFile(opts.fs, "/work/todo-api/keep.txt", []byte("x"), 0o644))

	_, err := execute(t, newNewCmd(gc, opts), "Todo API", "--dir", "/work", "--force", "--no-git")
	require.NoError(t, err)

	keep, err := afero.ReadFile(opts.fs, "/work/todo-api/keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "x", string(keep))
}

func TestNew_LoadErrorIsReturned(t *testing.T) {
	gc, opts := newTestCmd(&newOptions{})
	gc.LoadErr = oerrors.NewConfigurationError(oerrors.StageResolution, "bad config", "config", "")

	_, err := execute(t, newNewCmd(gc, opts), "Todo API", "--dry-run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
}

func TestNew_Interactive(t *testing.T) {
	var seen answers
	prompt := func(ans *answers) error {
		seen = *ans
		ans.Name = "Inventory Service"
		ans.Author = "Grace"
		ans.Flags = capability.Flags{DisableContainers: true}
		return nil
	}

	gc, opts := newTestCmd(&newOptions{prompt: prompt})
	out, err := execute(t, newNewCmd(gc, opts),
		"Draft", "--interactive", "--dry-run", "-o", "json", "--author", "Ada")
	require.NoError(t, err)

	assert.Equal(t, "Draft", seen.Name)
	assert.Equal(t, "Ada", seen.Author)

	var summary pipeline.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "inventory-service", summary.Slug)
	assert.NotContains(t, summary.Capabilities, "containers")
}

func TestNew_InteractivePromptError(t *testing.T) {
	prompt := func(*answers) error {
		return oerrors.NewConfigurationError(oerrors.StageResolution, "aborted", "", "")
	}
	gc, opts := newTestCmd(&newOptions{prompt: prompt})
	_, err := execute(t, newNewCmd(gc, opts), "--interactive")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitConfigurationError, oerrors.ExitCodeFromError(err))
}
