package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
)

const (
	collectionUsers         = "users"
	collectionClients       = "clients"
	collectionTimesheets    = "timesheets"
	collectionNotifications = "notifications"
)

// SnapshotStore persists whole entity collections in MongoDB. Each save
// replaces the collection wholesale; there is exactly one logical writer, so
// no finer-grained concurrency control is needed.
type SnapshotStore struct {
	db *mongo.Database
}

func NewSnapshotStore(db *mongo.Database) *SnapshotStore {
	return &SnapshotStore{db: db}
}

func (s *SnapshotStore) LoadUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.load(ctx, collectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SnapshotStore) SaveUsers(ctx context.Context, users []domain.User) error {
	docs := make([]any, len(users))
	for i, u := range users {
		docs[i] = u
	}
	return s.save(ctx, collectionUsers, docs)
}

func (s *SnapshotStore) LoadClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := s.load(ctx, collectionClients, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *SnapshotStore) SaveClients(ctx context.Context, clients []domain.Client) error {
	docs := make([]any, len(clients))
	for i, c := range clients {
		docs[i] = c
	}
	return s.save(ctx, collectionClients, docs)
}

func (s *SnapshotStore) LoadTimesheets(ctx context.Context) ([]domain.Timesheet, error) {
	var timesheets []domain.Timesheet
	if err := s.load(ctx, collectionTimesheets, &timesheets); err != nil {
		return nil, err
	}
	return timesheets, nil
}

func (s *SnapshotStore) SaveTimesheets(ctx context.Context, timesheets []domain.Timesheet) error {
	docs := make([]any, len(timesheets))
	for i, ts := range timesheets {
		docs[i] = ts
	}
	return s.save(ctx, collectionTimesheets, docs)
}

func (s *SnapshotStore) LoadNotifications(ctx context.Context) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := s.load(ctx, collectionNotifications, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *SnapshotStore) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	docs := make([]any, len(notifications))
	for i, n := range notifications {
		docs[i] = n
	}
	return s.save(ctx, collectionNotifications, docs)
}

func (s *SnapshotStore) load(ctx context.Context, collection string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("load %s: %w", collection, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// save replaces the collection contents with docs.
func (s *SnapshotStore) save(ctx context.Context, collection string, docs []any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	col := s.db.Collection(collection)
	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	return nil
}
