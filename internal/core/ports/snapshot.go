package ports

import (
	"context"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
)

// SnapshotStore persists whole entity collections. The core never issues
// partial writes: every mutation replaces the full collection snapshot.
type SnapshotStore interface {
	LoadUsers(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error

	LoadClients(ctx context.Context) ([]domain.Client, error)
	SaveClients(ctx context.Context, clients []domain.Client) error

	LoadTimesheets(ctx context.Context) ([]domain.Timesheet, error)
	SaveTimesheets(ctx context.Context, timesheets []domain.Timesheet) error

	LoadNotifications(ctx context.Context) ([]domain.Notification, error)
	SaveNotifications(ctx context.Context, notifications []domain.Notification) error
}

// InvoiceSequence hands out globally unique, strictly increasing invoice
// numbers. Persisted independently of the entity snapshots; a consumed number
// is never reused, even when the approval that drew it goes nowhere.
type InvoiceSequence interface {
	Next(ctx context.Context) (int64, error)
}
