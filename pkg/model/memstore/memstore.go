// Package memstore is an in-memory model.Store
// It backs the server when no database is configured and the tests of the packages above it.
package memstore

import (
	"context"
	"errors"
	"pokerv2-server/pkg/model"
	"sort"
	"sync"
	"time"
)

var errInvalidAmount = errors.New("amount must not be negative")

// Store keeps users, tables and hand histories in maps
// Everything going in or out is copied, so callers never share memory with the store.
type Store struct {
	mu        sync.RWMutex
	nextUser  int64
	nextHand  int64
	users     map[int64]*model.User
	tables    map[string]*model.Table
	histories []*model.HandHistory
}

var _ model.Store = (*Store)(nil)

// New returns an empty store
func New() *Store {
	return &Store{
		users:     make(map[int64]*model.User),
		tables:    make(map[string]*model.Table),
		histories: make([]*model.HandHistory, 0),
	}
}

// FindUser returns the account by its ID
func (s *Store) FindUser(_ context.Context, userID int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}

	cp := *u
	return &cp, nil
}

// Debit takes money from the account if the balance covers it
func (s *Store) Debit(_ context.Context, userID int64, amount int) (*model.User, error) {
	if amount < 0 {
		return nil, errInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}

	if u.Money < amount {
		return nil, model.ErrInsufficientFunds
	}

	u.Money -= amount
	u.Updated = time.Now().UTC()

	cp := *u
	return &cp, nil
}

// Credit adds money to the account
func (s *Store) Credit(_ context.Context, userID int64, amount int) (*model.User, error) {
	if amount < 0 {
		return nil, errInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}

	u.Money += amount
	u.Updated = time.Now().UTC()

	cp := *u
	return &cp, nil
}

// CreateUser opens an account with the starting balance
func (s *Store) CreateUser(_ context.Context, name string, money int) (*model.User, error) {
	if money < 0 {
		return nil, errInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUser++
	now := time.Now().UTC()
	u := &model.User{
		ID:      s.nextUser,
		Name:    name,
		Money:   money,
		Created: now,
		Updated: now,
	}

	s.users[u.ID] = u

	cp := *u
	return &cp, nil
}

// LoadTable returns a copy of the table
func (s *Store) LoadTable(_ context.Context, tableID string) (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[tableID]
	if !ok {
		return nil, model.ErrTableNotFound
	}

	return t.Clone(), nil
}

// SaveTable stores a copy of the table
func (s *Store) SaveTable(_ context.Context, t *model.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Updated = time.Now().UTC()
	s.tables[t.ID] = t.Clone()
	return nil
}

// FindJoinable returns the oldest waiting table with a free seat the user is not at
func (s *Store) FindJoinable(_ context.Context, blind int, userID int64, exclude ...string) (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	var found *model.Table
	for _, t := range s.tables {
		if skip[t.ID] || t.Phase != model.PhaseWaiting || t.Blind != blind || t.TotalPlayer >= model.SeatCount {
			continue
		}

		if t.PlayerByUserID(userID) != nil {
			continue
		}

		if found == nil || t.Created.Before(found.Created) {
			found = t
		}
	}

	if found == nil {
		return nil, model.ErrTableNotFound
	}

	return found.Clone(), nil
}

// ListTables returns every table with the blind, or all tables when blind is 0
func (s *Store) ListTables(_ context.Context, blind int) ([]*model.Table, error) {
	return s.filter(func(t *model.Table) bool {
		return blind == 0 || t.Blind == blind
	}), nil
}

// TablesForUser returns the tables the user is seated at
func (s *Store) TablesForUser(_ context.Context, userID int64) ([]*model.Table, error) {
	return s.filter(func(t *model.Table) bool {
		return t.PlayerByUserID(userID) != nil
	}), nil
}

func (s *Store) filter(match func(t *model.Table) bool) []*model.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]*model.Table, 0)
	for _, t := range s.tables {
		if match(t) {
			tables = append(tables, t.Clone())
		}
	}

	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].Created.Before(tables[j].Created)
	})

	return tables
}

// SaveHandHistory records a finished hand
func (s *Store) SaveHandHistory(_ context.Context, h *model.HandHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextHand++
	h.ID = s.nextHand
	h.Created = time.Now().UTC()

	s.histories = append(s.histories, h.Clone())
	return nil
}

// HandHistories returns the recorded hands of a table, oldest first
func (s *Store) HandHistories(tableID string) []*model.HandHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.HandHistory, 0)
	for _, h := range s.histories {
		if h.TableID == tableID {
			out = append(out, h.Clone())
		}
	}

	return out
}
