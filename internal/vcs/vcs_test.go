package vcs

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svcgen/cli/internal/capability"
	"github.com/svcgen/cli/internal/testutil"
)

type call struct {
	name string
	args []string
	opts RunOpts
}

type stubRunner struct {
	missing bool
	results map[string]CmdResult
	errs    map[string]error
	calls   []call
}

func (s *stubRunner) LookPath(name string) (string, error) {
	if s.missing {
		return "", exec.ErrNotFound
	}
	return "/usr/bin/" + name, nil
}

func (s *stubRunner) Run(_ context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	s.calls = append(s.calls, call{name: name, args: args, opts: opts})
	if err := s.errs[args[0]]; err != nil {
		return CmdResult{}, err
	}
	return s.results[args[0]], nil
}

func TestInit(t *testing.T) {
	cfg := testutil.Config(t, "Todo API", capability.Flags{})

	tests := []struct {
		name       string
		runner     *stubRunner
		wantStatus Status
		wantMsg    string
		wantCalls  int
	}{
		{
			name:       "success",
			runner:     &stubRunner{},
			wantStatus: StatusInitialized,
			wantCalls:  3,
		},
		{
			name:       "git missing",
			runner:     &stubRunner{missing: true},
			wantStatus: StatusSkipped,
			wantMsg:    "not installed",
		},
		{
			name: "commit exits non-zero",
			runner: &stubRunner{results: map[string]CmdResult{
				"commit": {ExitCode: 128, Stderr: "fatal: unable to auto-detect email address\n"},
			}},
			wantStatus: StatusFailed,
			wantMsg:    "git commit: fatal: unable to auto-detect email address",
			wantCalls:  3,
		},
		{
			name: "add exits non-zero without stderr",
			runner: &stubRunner{results: map[string]CmdResult{
				"add": {ExitCode: 1},
			}},
			wantStatus: StatusFailed,
			wantMsg:    "git add: exit code 1",
			wantCalls:  2,
		},
		{
			name:       "init cannot run",
			runner:     &stubRunner{errs: map[string]error{"init": context.Canceled}},
			wantStatus: StatusFailed,
			wantMsg:    "context canceled",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Init(context.Background(), tt.runner, "/work/todo-api", cfg)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Contains(t, res.Message, tt.wantMsg)
			assert.Len(t, tt.runner.calls, tt.wantCalls)
		})
	}
}

func TestInit_CommandsAndEnvironment(t *testing.T) {
	cfg := testutil.Config(t, "Todo API", capability.Flags{})
	runner := &stubRunner{}

	Init(context.Background(), runner, "/work/todo-api", cfg)

	require.Len(t, runner.calls, 3)
	assert.Equal(t, []string{"init", "--quiet"}, runner.calls[0].args)
	assert.Equal(t, []string{"add", "."}, runner.calls[1].args)
	assert.Equal(t, []string{"commit", "--quiet", "-m", "Initial commit: Todo API service scaffold"}, runner.calls[2].args)

	for _, c := range runner.calls {
		assert.Equal(t, "git", c.name)
		assert.Equal(t, "/work/todo-api", c.opts.Dir)
		assert.Equal(t, "Jane Doe", c.opts.Env["GIT_AUTHOR_NAME"])
		assert.Equal(t, "jane@example.com", c.opts.Env["GIT_COMMITTER_EMAIL"])
	}
}

func TestRealRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	r := NewRealRunner()
	dir := t.TempDir()

	res, err := r.Run(context.Background(), "sh", []string{"-c", "pwd; echo $SVCGEN_PROBE; echo oops >&2; exit 3"},
		RunOpts{Dir: dir, Env: map[string]string{"SVCGEN_PROBE": "probe"}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Stdout, "probe")
	assert.Contains(t, res.Stdout, filepath.Base(dir))
	assert.Equal(t, "oops", strings.TrimSpace(res.Stderr))

	_, err = r.Run(context.Background(), "svcgen-no-such-binary", nil, RunOpts{})
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestInit_RealGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "README.md", "# Todo API\n")
	cfg := testutil.Config(t, "Todo API", capability.Flags{})

	res := Init(context.Background(), NewRealRunner(), dir, cfg)
	require.Equal(t, StatusInitialized, res.Status, res.Message)

	out, err := NewRealRunner().Run(context.Background(), "git", []string{"log", "--format=%an <%ae>|%s"}, RunOpts{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe <jane@example.com>|Initial commit: Todo API service scaffold", strings.TrimSpace(out.Stdout))
}
