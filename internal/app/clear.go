package app

import (
	"fmt"

	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// ClearClient defines dependencies required by the remove and clear commands.
type ClearClient interface {
	Get(id string) (domain.Notification, error)
	Remove(id string)
	ClearAll() int
}

// ClearUseCase coordinates remove and clear behavior.
type ClearUseCase struct {
	client ClearClient
}

// NewClearUseCase creates a clear use-case.
func NewClearUseCase(client ClearClient) *ClearUseCase {
	if client == nil {
		panic("NewClearUseCase: client dependency cannot be nil")
	}
	return &ClearUseCase{client: client}
}

// Remove deletes the given records.
func (u *ClearUseCase) Remove(ids ...string) error {
	if err := requireAll(u.client, ids); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	for _, id := range ids {
		u.client.Remove(id)
	}
	return nil
}

// ClearInput holds clear options and the confirmation adapter.
type ClearInput struct {
	Force     bool
	ConfirmFn func() bool
}

// All deletes every record after confirmation and returns how many went.
// It reports false when the user declined.
func (u *ClearUseCase) All(in ClearInput) (int, bool) {
	if !in.Force && in.ConfirmFn != nil && !in.ConfirmFn() {
		return 0, false
	}
	return u.client.ClearAll(), true
}
