package domain

import "errors"

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is one append-only in-app message for a user. Created only by
// the lifecycle engine as a side effect of transitions; nothing is ever
// mutated except IsRead.
type Notification struct {
	ID        string `json:"id" bson:"_id"`
	UserID    int    `json:"user_id" bson:"user_id"`
	Message   string `json:"message" bson:"message"`
	Timestamp string `json:"timestamp" bson:"timestamp"` // RFC3339
	IsRead    bool   `json:"is_read" bson:"is_read"`
}
