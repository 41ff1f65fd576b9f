// Package report builds the instructions printed after a project is generated.
package report

import (
	"fmt"
	"io"

	"github.com/svcgen/cli/internal/capability"
	"github.com/svcgen/cli/internal/output"
	"github.com/svcgen/cli/internal/project"
)

// Step is one numbered instruction.
type Step struct {
	Text    string `json:"text" yaml:"text"`
	Command string `json:"command,omitempty" yaml:"command,omitempty"`
}

// NextSteps returns the ordered instructions for cfg. It has no side effects.
func NextSteps(cfg project.Config) []Step {
	steps := []Step{
		{Text: "Enter the project directory", Command: "cd " + cfg.Slug},
		{Text: "Create a virtual environment", Command: "python -m venv venv"},
		{Text: "Activate it", Command: "source venv/bin/activate"},
		{Text: "Install dependencies", Command: "make dev-install"},
		{Text: "Review .env and replace the placeholder SECRET_KEY"},
	}

	if cfg.Has(capability.Database) {
		steps = append(steps, Step{Text: "Run database migrations", Command: "make migrate"})
	}
	if cfg.Has(capability.Cache) {
		steps = append(steps, Step{Text: "Start Redis", Command: "docker run -d -p 6379:6379 redis:7-alpine"})
	}
	if cfg.Has(capability.BackgroundTasks) {
		steps = append(steps, Step{Text: "Start the Celery worker", Command: "make worker"})
	}
	if cfg.Has(capability.Containers) {
		steps = append(steps,
			Step{Text: "Or run the whole stack in containers", Command: "docker compose up --build"},
			Step{Text: "Deploy to Kubernetes", Command: "kubectl apply -f deploy/kubernetes/"},
		)
	}

	return append(steps, Step{Text: "Start the development server", Command: "make run"})
}

// BaseURL is where the generated API listens locally.
func BaseURL(cfg project.Config) string {
	return fmt.Sprintf("http://localhost:%d", cfg.Port)
}

// DocsURL is the interactive API documentation of the generated service.
func DocsURL(cfg project.Config) string {
	return BaseURL(cfg) + project.APIPrefix + "/docs"
}

// Render writes steps as a numbered list followed by the API URLs.
func Render(w io.Writer, cfg project.Config, steps []Step) error {
	if _, err := fmt.Fprintln(w, output.StyleSummary.Render("Next steps:")); err != nil {
		return err
	}

	for i, s := range steps {
		line := fmt.Sprintf("  %d. %s", i+1, s.Text)
		if s.Command != "" {
			line += ": " + output.StyleNoun.Render(s.Command)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nAPI:  %s\nDocs: %s\n", BaseURL(cfg), DocsURL(cfg))
	return err
}
