package output

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// Exit code constants
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitUsageError  = 2
	ExitAPIError    = 3
	ExitConfigError = 4
	ExitAuthError   = 5
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
}

// Error implements the error interface, returning the summary
func (e *CLIError) Error() string {
	return e.Summary
}

// FromError maps a domain or transport error onto a structured CLI
// error with a suggestion the user can act on.
func FromError(err error) *CLIError {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrUnauthorized):
		return &CLIError{
			Summary:    "not authenticated",
			Detail:     err.Error(),
			Suggestion: "Run 'clinicctl login' to establish a session",
			ExitCode:   ExitAuthError,
		}
	case errors.Is(err, domain.ErrNotFound):
		return &CLIError{
			Summary:  "resource not found",
			Detail:   err.Error(),
			ExitCode: ExitAPIError,
		}
	case errors.Is(err, domain.ErrValidation):
		return &CLIError{
			Summary:  "validation failed",
			Detail:   err.Error(),
			ExitCode: ExitUsageError,
		}
	case errors.Is(err, domain.ErrServerUnavailable):
		return &CLIError{
			Summary:    "server unavailable",
			Detail:     err.Error(),
			Suggestion: "Check server.url in .clinicctl.yaml or pass --server",
			ExitCode:   ExitAPIError,
		}
	default:
		return &CLIError{
			Summary:  err.Error(),
			ExitCode: ExitGeneral,
		}
	}
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	}
}
