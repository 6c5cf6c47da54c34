// Package notify delivers due-soon reminder digests to the configured
// channels.
package notify

import (
	"context"

	"github.com/famledger/famledger/internal/models"
)

// Notifier sends a digest for a non-empty batch of unpaid reminders.
type Notifier interface {
	Notify(ctx context.Context, reminders []*models.Reminder) error
	Name() string
}
