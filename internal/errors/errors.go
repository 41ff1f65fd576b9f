// Package errors provides the error taxonomy for svcgen.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the three failure classes of a generation run.
var (
	// ErrConfiguration indicates invalid or conflicting user input.
	ErrConfiguration = errors.New("configuration error")

	// ErrTemplate indicates an authoring defect in the template catalog.
	ErrTemplate = errors.New("template error")

	// ErrIO indicates a filesystem failure.
	ErrIO = errors.New("io error")
)

// Stage names the pipeline stage an error was raised in.
type Stage string

const (
	StageDerivation      Stage = "derivation"
	StageResolution      Stage = "resolution"
	StageRendering       Stage = "rendering"
	StageMaterialization Stage = "materialization"
)

// DetailError captures structured error information for terminal output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Stage is the pipeline stage that failed (optional).
	Stage Stage

	// Message is the specific description (required).
	Message string

	// Location is the offending path (optional).
	Location string

	// Field is the input field or flag at fault (optional).
	Field string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Stage != "" {
		b.WriteString("  Stage: ")
		b.WriteString(string(e.Stage))
		b.WriteString("\n")
	}
	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a configuration error raised at stage.
func NewConfigurationError(stage Stage, message, field, hint string) error {
	return &DetailError{
		Type:    "invalid configuration",
		Stage:   stage,
		Message: message,
		Field:   field,
		Hint:    hint,
		Cause:   ErrConfiguration,
	}
}

// NewIOError creates a filesystem error for path. The cause is joined with
// ErrIO so both remain reachable through errors.Is.
func NewIOError(message, path, hint string, cause error) error {
	wrapped := ErrIO
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrIO, cause)
	}
	return &DetailError{
		Type:     "materialization failed",
		Stage:    StageMaterialization,
		Message:  message,
		Location: path,
		Hint:     hint,
		Cause:    wrapped,
	}
}

// TemplateError reports an authoring defect in a catalog template.
// Template identifies the catalog entry, Token the offending placeholder.
type TemplateError struct {
	Template string
	Token    string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	var b strings.Builder
	b.WriteString("Error: template defect\n")
	b.WriteString("  Stage: ")
	b.WriteString(string(StageRendering))
	b.WriteString("\n  Template: ")
	b.WriteString(e.Template)
	b.WriteString("\n")
	if e.Token != "" {
		b.WriteString("  Token: ")
		b.WriteString(e.Token)
		b.WriteString("\n")
	}
	b.WriteString("\n  ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	b.WriteString("\n")
	return b.String()
}

// Unwrap returns the underlying error.
func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrTemplate.
func (e *TemplateError) Is(target error) bool {
	return target == ErrTemplate
}

// StageOf returns the stage recorded on err, or "" if there is none.
func StageOf(err error) Stage {
	var detail *DetailError
	if errors.As(err, &detail) {
		return detail.Stage
	}
	var tmplErr *TemplateError
	if errors.As(err, &tmplErr) {
		return StageRendering
	}
	return ""
}

// Render formats err for the terminal. Structured errors render their own
// block; anything else gets the "Error:" prefix.
func Render(err error) string {
	var detail *DetailError
	if errors.As(err, &detail) {
		return detail.Error()
	}
	var tmplErr *TemplateError
	if errors.As(err, &tmplErr) {
		return tmplErr.Error()
	}
	return "Error: " + err.Error()
}
