package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/store"
)

// NotificationService implements ports.NotificationService.
type NotificationService struct {
	store *store.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewNotificationService(st *store.Store, log zerolog.Logger) *NotificationService {
	return &NotificationService{store: st, log: log, now: time.Now}
}

// Create appends a notification for the user and returns it.
func (s *NotificationService) Create(ctx context.Context, userID int, message string) *domain.Notification {
	n := domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	s.store.AddNotification(ctx, n)
	s.log.Debug().Int("user_id", userID).Str("notification_id", n.ID).Msg("notification created")
	return &n
}

// For lists the user's notifications, newest first.
func (s *NotificationService) For(_ context.Context, userID int) []domain.Notification {
	return s.store.NotificationsFor(userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return s.store.MarkNotificationRead(ctx, notificationID)
}
