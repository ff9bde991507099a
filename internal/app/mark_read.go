package app

import (
	"fmt"

	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// MarkReadClient defines dependencies required to mark notifications read.
type MarkReadClient interface {
	Get(id string) (domain.Notification, error)
	MarkAsRead(id string)
	MarkAllAsRead() int
}

// MarkReadUseCase coordinates mark-read behavior.
type MarkReadUseCase struct {
	client MarkReadClient
}

// NewMarkReadUseCase creates a mark-read use-case.
func NewMarkReadUseCase(client MarkReadClient) *MarkReadUseCase {
	if client == nil {
		panic("NewMarkReadUseCase: client dependency cannot be nil")
	}
	return &MarkReadUseCase{client: client}
}

// Execute marks every id read. Unknown ids fail before anything changes.
func (u *MarkReadUseCase) Execute(ids ...string) error {
	if err := requireAll(u.client, ids); err != nil {
		return fmt.Errorf("mark-read: %w", err)
	}
	for _, id := range ids {
		u.client.MarkAsRead(id)
	}
	return nil
}

// All marks every record read and returns how many changed.
func (u *MarkReadUseCase) All() int {
	return u.client.MarkAllAsRead()
}

type getter interface {
	Get(id string) (domain.Notification, error)
}

func requireAll(g getter, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("at least one id is required")
	}
	for _, id := range ids {
		if _, err := g.Get(id); err != nil {
			return err
		}
	}
	return nil
}
