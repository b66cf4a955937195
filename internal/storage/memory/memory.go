// Package memory provides an in-process implementation of the storage.Store interface.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps users and expenses in maps guarded by a mutex.
// Its ID counters only move forward, so deleted IDs are never handed out again.
type Store struct {
	mu            sync.RWMutex
	users         map[int64]*models.User
	expenses      map[int64]*models.Expense
	order         []int64
	nextUserID    int64
	nextExpenseID int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:         make(map[int64]*models.User),
		expenses:      make(map[int64]*models.Expense),
		nextUserID:    1,
		nextExpenseID: 1,
	}
}

// Close is a noop
func (s *Store) Close() error { return nil }

// CreateUser adds a user
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextUserID
	s.nextUserID++
	u := *user
	s.users[u.ID] = &u
	return nil
}

// GetUser returns a copy of the user with the given ID
func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: "user", ID: id}
	}
	c := *u
	return &c, nil
}

// UpdateUser overwrites an existing user's fields
func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return &models.NotFoundError{Kind: "user", ID: user.ID}
	}
	u := *user
	s.users[u.ID] = &u
	return nil
}

// DeleteUser removes a user
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return &models.NotFoundError{Kind: "user", ID: id}
	}
	delete(s.users, id)
	return nil
}

// ListUsers returns copies of all users
func (s *Store) ListUsers(_ context.Context) (map[int64]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make(map[int64]*models.User, len(s.users))
	for id, u := range s.users {
		c := *u
		users[id] = &c
	}
	return users, nil
}

// CreateExpense appends an expense. The record is copied before it becomes
// visible, so readers only ever see complete expenses.
func (s *Store) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense.ID = s.nextExpenseID
	s.nextExpenseID++
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	s.expenses[expense.ID] = expense.Clone()
	s.order = append(s.order, expense.ID)
	return nil
}

// GetExpense returns a copy of the expense with the given ID
func (s *Store) GetExpense(_ context.Context, id int64) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: "expense", ID: id}
	}
	return e.Clone(), nil
}

// ListExpenses returns copies of all expenses in insertion order
func (s *Store) ListExpenses(_ context.Context) ([]*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expenses := make([]*models.Expense, len(s.order))
	for i, id := range s.order {
		expenses[i] = s.expenses[id].Clone()
	}
	return expenses, nil
}
