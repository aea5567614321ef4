// Package store holds the four entity collections in memory and writes whole
// snapshots through to an injected persistence backend. Persistence failures
// are logged and the in-memory state stays authoritative.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
)

type Store struct {
	mu            sync.RWMutex
	users         []domain.User
	clients       []domain.Client
	timesheets    []domain.Timesheet
	notifications []domain.Notification

	persist ports.SnapshotStore // nil = memory only
	log     zerolog.Logger
}

// Open loads all collections from persist. A load failure or an empty result
// falls back to the seed dataset for users/clients and to empty collections
// for timesheets/notifications. persist may be nil for a memory-only store.
func Open(ctx context.Context, persist ports.SnapshotStore, log zerolog.Logger) *Store {
	s := &Store{persist: persist, log: log}

	s.users = SeedUsers()
	s.clients = SeedClients()

	if persist == nil {
		return s
	}

	if users, err := persist.LoadUsers(ctx); err != nil {
		log.Warn().Err(err).Msg("could not load users, using seed dataset")
	} else if len(users) > 0 {
		s.users = users
	}

	if clients, err := persist.LoadClients(ctx); err != nil {
		log.Warn().Err(err).Msg("could not load clients, using seed dataset")
	} else if len(clients) > 0 {
		s.clients = clients
	}

	if timesheets, err := persist.LoadTimesheets(ctx); err != nil {
		log.Warn().Err(err).Msg("could not load timesheets, starting empty")
	} else {
		s.timesheets = timesheets
		s.sortTimesheetsLocked()
	}

	if notifications, err := persist.LoadNotifications(ctx); err != nil {
		log.Warn().Err(err).Msg("could not load notifications, starting empty")
	} else {
		s.notifications = notifications
	}

	return s
}

// --- Users ---

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) FindUser(id int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			c := u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) FindUserByEmail(email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ReplaceUser swaps the stored record with the same ID.
func (s *Store) ReplaceUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = user
			s.saveUsersLocked(ctx)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// --- Clients ---

func (s *Store) Clients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

func (s *Store) FindClient(id int) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			cc := c
			return &cc, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

// AddClient assigns the next free ID and appends the client.
func (s *Store) AddClient(ctx context.Context, client domain.Client) domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := 1
	for _, c := range s.clients {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	client.ID = next
	s.clients = append(s.clients, client)
	s.saveClientsLocked(ctx)
	return client
}

func (s *Store) ReplaceClient(ctx context.Context, client domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.clients {
		if c.ID == client.ID {
			s.clients[i] = client
			s.saveClientsLocked(ctx)
			return nil
		}
	}
	return domain.ErrClientNotFound
}

// DeleteClient removes the client unless a user still references it.
func (s *Store) DeleteClient(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ClientID == id {
			return domain.ErrClientInUse
		}
	}
	for i, c := range s.clients {
		if c.ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			s.saveClientsLocked(ctx)
			return nil
		}
	}
	return domain.ErrClientNotFound
}

// --- Timesheets ---

// Timesheets returns a copy of the collection, sorted by period end descending.
func (s *Store) Timesheets() []domain.Timesheet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Timesheet, len(s.timesheets))
	copy(out, s.timesheets)
	return out
}

func (s *Store) FindTimesheet(id string) (*domain.Timesheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ts := range s.timesheets {
		if ts.ID == id {
			return ts.Clone(), nil
		}
	}
	return nil, domain.ErrTimesheetNotFound
}

// UpsertTimesheets replaces records matching the given ids and appends the
// rest, then re-sorts and persists the collection. Single-item and bulk
// transitions all merge through this one path.
func (s *Store) UpsertTimesheets(ctx context.Context, updated ...domain.Timesheet) {
	if len(updated) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := make(map[string]struct{}, len(updated))
	for _, u := range updated {
		replaced[u.ID] = struct{}{}
	}
	kept := s.timesheets[:0]
	for _, ts := range s.timesheets {
		if _, ok := replaced[ts.ID]; !ok {
			kept = append(kept, ts)
		}
	}
	s.timesheets = append(kept, updated...)
	s.sortTimesheetsLocked()
	s.saveTimesheetsLocked(ctx)
}

// --- Notifications ---

func (s *Store) AddNotification(ctx context.Context, n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching read order.
	s.notifications = append([]domain.Notification{n}, s.notifications...)
	s.saveNotificationsLocked(ctx)
}

func (s *Store) NotificationsFor(userID int) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications[i].IsRead = true
			s.saveNotificationsLocked(ctx)
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

// --- persistence write-through (callers hold s.mu) ---

func (s *Store) saveUsersLocked(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveUsers(ctx, s.users); err != nil {
		s.log.Error().Err(err).Msg("persist users failed, continuing in memory")
	}
}

func (s *Store) saveClientsLocked(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveClients(ctx, s.clients); err != nil {
		s.log.Error().Err(err).Msg("persist clients failed, continuing in memory")
	}
}

func (s *Store) saveTimesheetsLocked(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveTimesheets(ctx, s.timesheets); err != nil {
		s.log.Error().Err(err).Msg("persist timesheets failed, continuing in memory")
	}
}

func (s *Store) saveNotificationsLocked(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveNotifications(ctx, s.notifications); err != nil {
		s.log.Error().Err(err).Msg("persist notifications failed, continuing in memory")
	}
}

func (s *Store) sortTimesheetsLocked() {
	sort.SliceStable(s.timesheets, func(i, j int) bool {
		return s.timesheets[i].PayPeriodEnd > s.timesheets[j].PayPeriodEnd
	})
}
