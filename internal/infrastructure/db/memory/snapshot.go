// Package memory provides in-process implementations of the persistence
// ports. Used in tests and as the degraded mode when MongoDB or Redis are
// unreachable: the service keeps working, state just does not survive a
// restart.
package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
)

// SnapshotStore keeps collection snapshots in memory.
type SnapshotStore struct {
	mu            sync.Mutex
	users         []domain.User
	clients       []domain.Client
	timesheets    []domain.Timesheet
	notifications []domain.Notification
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) LoadUsers(context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.User(nil), s.users...), nil
}

func (s *SnapshotStore) SaveUsers(_ context.Context, users []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]domain.User(nil), users...)
	return nil
}

func (s *SnapshotStore) LoadClients(context.Context) ([]domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Client(nil), s.clients...), nil
}

func (s *SnapshotStore) SaveClients(_ context.Context, clients []domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append([]domain.Client(nil), clients...)
	return nil
}

func (s *SnapshotStore) LoadTimesheets(context.Context) ([]domain.Timesheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Timesheet(nil), s.timesheets...), nil
}

func (s *SnapshotStore) SaveTimesheets(_ context.Context, timesheets []domain.Timesheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timesheets = append([]domain.Timesheet(nil), timesheets...)
	return nil
}

func (s *SnapshotStore) LoadNotifications(context.Context) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.notifications...), nil
}

func (s *SnapshotStore) SaveNotifications(_ context.Context, notifications []domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append([]domain.Notification(nil), notifications...)
	return nil
}

// InvoiceSequence is an atomic in-memory counter. The first number handed out
// is seed+1.
type InvoiceSequence struct {
	last atomic.Int64
}

func NewInvoiceSequence(seed int64) *InvoiceSequence {
	s := &InvoiceSequence{}
	s.last.Store(seed)
	return s
}

func (s *InvoiceSequence) Next(context.Context) (int64, error) {
	return s.last.Add(1), nil
}
