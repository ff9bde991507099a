package app

import (
	"fmt"
	"io"
)

// CleanupClient defines dependencies required by the cleanup command.
type CleanupClient interface {
	Cleanup() []string
}

// CleanupUseCase coordinates cleanup behavior.
type CleanupUseCase struct {
	client CleanupClient
}

// NewCleanupUseCase creates a cleanup use-case.
func NewCleanupUseCase(client CleanupClient) *CleanupUseCase {
	if client == nil {
		panic("NewCleanupUseCase: client dependency cannot be nil")
	}
	return &CleanupUseCase{client: client}
}

// Execute runs one janitor sweep, removing expired alerts and records past
// retention, and reports what went.
func (u *CleanupUseCase) Execute(w io.Writer, verbose bool) []string {
	removed := u.client.Cleanup()
	if w == nil {
		return removed
	}
	if verbose {
		for _, id := range removed {
			_, _ = fmt.Fprintf(w, "removed %s\n", id)
		}
	}
	_, _ = fmt.Fprintf(w, "Cleanup completed: %d removed\n", len(removed))
	return removed
}
