package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"github.com/svcgen/cli/internal/vcs"
)

// execute runs c with args and returns what it wrote to stdout.
func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	c.SilenceErrors = true
	c.SilenceUsage = true
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}

type stubRunner struct {
	missing bool
	calls   [][]string
}

func (s *stubRunner) LookPath(name string) (string, error) {
	if s.missing {
		return "", errors.New("not found")
	}
	return "/usr/bin/" + name, nil
}

func (s *stubRunner) Run(_ context.Context, _ string, args []string, _ vcs.RunOpts) (vcs.CmdResult, error) {
	s.calls = append(s.calls, args)
	return vcs.CmdResult{}, nil
}
