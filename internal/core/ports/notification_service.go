package ports

import (
	"context"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
)

// NotificationService is the append-only per-user message log.
type NotificationService interface {
	Create(ctx context.Context, userID int, message string) *domain.Notification
	For(ctx context.Context, userID int) []domain.Notification
	MarkRead(ctx context.Context, notificationID string) error
}
