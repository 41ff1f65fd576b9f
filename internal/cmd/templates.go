package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/svcgen/cli/internal/capability"
	"github.com/svcgen/cli/internal/output"
	"github.com/svcgen/cli/internal/templates"
)

// catalogEntry is the listing form of a catalog entry.
type catalogEntry struct {
	Path        string   `json:"path" yaml:"path"`
	Requires    []string `json:"requires" yaml:"requires"`
	Mode        string   `json:"mode" yaml:"mode"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewTemplatesCmd creates the templates command.
func NewTemplatesCmd(_ *GlobalConfig) *cobra.Command {
	var (
		flags      capability.Flags
		outputFlag string
	)

	c := &cobra.Command{
		Use:   "templates",
		Short: "List the template catalog",
		Long: `List the files svcgen can generate and the capabilities they require.

Without capability flags the whole catalog is listed. With them, only the
entries selected for the resulting capability set are shown.

Examples:
  # Whole catalog
  svcgen templates

  # What a project without Redis contains
  svcgen templates --disable-cache`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runTemplates(c, flags, outputFlag)
		},
	}

	addCapabilityFlags(c.Flags(), &flags)
	c.Flags().StringVarP(&outputFlag, "output", "o", "text", "output format: text, json, yaml")

	return c
}

func runTemplates(c *cobra.Command, flags capability.Flags, outputFlag string) error {
	format, err := parseFormat(outputFlag)
	if err != nil {
		return err
	}

	reg, err := templates.Default()
	if err != nil {
		return err
	}

	entries := reg.Entries()
	heading := fmt.Sprintf("%d catalog entries", len(entries))
	if capabilityFlagsChanged(c.Flags()) {
		set, err := capability.Resolve(flags)
		if err != nil {
			return err
		}
		entries = reg.Select(set)
		heading = fmt.Sprintf("%d of %d entries for capabilities: %s", len(entries), reg.Len(), set.String())
	}

	listing := make([]catalogEntry, len(entries))
	for i, e := range entries {
		requires := make([]string, len(e.Requires))
		for j, r := range e.Requires {
			requires[j] = string(r)
		}
		mode := e.Mode
		if mode == 0 {
			mode = templates.DefaultMode
		}
		listing[i] = catalogEntry{
			Path:        e.Path,
			Requires:    requires,
			Mode:        fmt.Sprintf("%04o", uint32(mode.Perm())),
			Description: e.Description,
		}
	}

	w := c.OutOrStdout()
	if format != output.FormatText {
		return output.Encode(w, format, listing)
	}

	t := output.NewTable("PATH", "REQUIRES", "MODE", "DESCRIPTION").
		ColumnStyle(1, output.StyleNoun).
		ColumnStyle(3, output.StyleDim)
	for _, e := range listing {
		requires := "-"
		if len(e.Requires) > 0 {
			requires = strings.Join(e.Requires, ", ")
		}
		t.Row(e.Path, requires, e.Mode, e.Description)
	}

	fmt.Fprintln(w, t.String())
	_, err = fmt.Fprintln(w, output.StyleSummary.Render(heading))
	return err
}
