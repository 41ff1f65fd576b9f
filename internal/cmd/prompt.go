package cmd

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/svcgen/cli/internal/capability"
	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/identity"
	"github.com/svcgen/cli/internal/output"
)

// answers holds the values collected by the interactive prompt.
type answers struct {
	Name        string
	Author      string
	Email       string
	Description string
	Flags       capability.Flags
}

// promptFunc asks the user to confirm or fill in ans. Tests replace it.
type promptFunc func(ans *answers) error

// runPrompt shows a huh form prefilled with ans.
func runPrompt(ans *answers) error {
	if !output.IsInteractive() {
		return oerrors.NewConfigurationError(oerrors.StageResolution,
			"interactive mode requires a terminal", "--interactive",
			"Pass the project name and flags on the command line instead")
	}

	selected := selectedCapabilities(ans.Flags)

	options := make([]huh.Option[capability.Capability], 0, len(capability.All()))
	for _, c := range capability.All() {
		options = append(options, huh.NewOption(string(c), c))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Display name, e.g. Todo API").
				Value(&ans.Name).
				Validate(func(s string) error {
					_, err := identity.Derive(s)
					if err != nil {
						var detail *oerrors.DetailError
						if errors.As(err, &detail) {
							return errors.New(detail.Message)
						}
					}
					return err
				}),
			huh.NewInput().Title("Author").Value(&ans.Author),
			huh.NewInput().Title("Email").Value(&ans.Email),
			huh.NewInput().Title("Description").Value(&ans.Description),
		),
		huh.NewGroup(
			huh.NewMultiSelect[capability.Capability]().
				Title("Capabilities").
				Description("Background tasks require the cache").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("aborted")
		}
		return err
	}

	ans.Name = strings.TrimSpace(ans.Name)
	ans.Flags = flagsFor(selected)
	return nil
}

// selectedCapabilities returns the capabilities the flags leave enabled,
// ignoring coupling rules.
func selectedCapabilities(f capability.Flags) []capability.Capability {
	var out []capability.Capability
	if !f.DisableDatabase {
		out = append(out, capability.Database)
	}
	if !f.DisableCache {
		out = append(out, capability.Cache)
	}
	if !f.DisableContainers {
		out = append(out, capability.Containers)
	}
	if f.EnableBackgroundTasks {
		out = append(out, capability.BackgroundTasks)
	}
	return out
}

// flagsFor is the inverse of selectedCapabilities.
func flagsFor(selected []capability.Capability) capability.Flags {
	set := capability.NewSet(selected...)
	return capability.Flags{
		DisableDatabase:       !set.Has(capability.Database),
		DisableCache:          !set.Has(capability.Cache),
		DisableContainers:     !set.Has(capability.Containers),
		EnableBackgroundTasks: set.Has(capability.BackgroundTasks),
	}
}
