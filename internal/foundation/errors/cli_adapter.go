package errors

import (
	"context"
	"fmt"
	"log/slog"
)

// CLIErrorAdapter determines exit codes and user-facing messages for command failures.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor determines the exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	classified, ok := AsClassified(err)
	if !ok {
		return 1
	}
	switch classified.Category() {
	case CategoryValidation:
		return 2
	case CategoryConfig:
		return 7
	case CategoryStorage:
		return 8
	case CategorySchema:
		return 11
	case CategoryScheduler, CategoryHTTP:
		return 12
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// FormatError formats an error for display on stderr.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok || a.verbose {
		return fmt.Sprintf("Error: %v", err)
	}
	if classified.CanRetry() {
		return fmt.Sprintf("Error: %s (transient, retry may succeed)", classified.Message())
	}
	return "Error: " + classified.Message()
}

// Log records the error with a level derived from its severity.
func (a *CLIErrorAdapter) Log(err error) {
	if err == nil {
		return
	}
	if classified, ok := AsClassified(err); ok {
		a.logger.Log(context.Background(), levelFromSeverity(classified.Severity()), classified.Message(),
			slog.String("category", string(classified.Category())),
			slog.Bool("retryable", classified.CanRetry()),
			slog.Any("cause", classified.Cause()))
		return
	}
	a.logger.Error("Unclassified error", "error", err)
}
