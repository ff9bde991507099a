package app

import (
	"fmt"

	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// DismissClient defines dependencies required by the dismiss command.
type DismissClient interface {
	Get(id string) (domain.Notification, error)
	Dismiss(id string) error
}

// DismissUseCase coordinates dismiss behavior.
type DismissUseCase struct {
	client DismissClient
}

// NewDismissUseCase creates a dismiss use-case.
func NewDismissUseCase(client DismissClient) *DismissUseCase {
	if client == nil {
		panic("NewDismissUseCase: client dependency cannot be nil")
	}
	return &DismissUseCase{client: client}
}

// Execute dismisses every id. Dismissed records stay listed until removed.
// Nothing changes when one id is unknown or not dismissible.
func (u *DismissUseCase) Execute(ids ...string) error {
	if err := requireAll(u.client, ids); err != nil {
		return fmt.Errorf("dismiss: %w", err)
	}
	for _, id := range ids {
		if n, _ := u.client.Get(id); !n.Dismissible {
			return fmt.Errorf("dismiss: %w: %s", domain.ErrNotDismissible, id)
		}
	}
	for _, id := range ids {
		if err := u.client.Dismiss(id); err != nil {
			return fmt.Errorf("dismiss: %w", err)
		}
	}
	return nil
}
