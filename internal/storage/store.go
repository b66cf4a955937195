// Package storage provides abstractions for user and expense storage.
package storage

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Store defines the interface for directory and ledger storage operations.
// This abstraction allows swapping storage backends (memory, SQLite)
// without changing the service layer.
//
// Stores own ID allocation: IDs are sequential starting at 1 and never reused.
// Every returned value is a copy the caller may keep.
type Store interface {
	// CreateUser persists a new user. The user.ID field will be populated by the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	// Returns a *models.NotFoundError if the user does not exist.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// UpdateUser overwrites name, email and mobile of an existing user.
	// Returns a *models.NotFoundError if the user does not exist.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser removes a user. Expenses referencing it are left untouched.
	// Returns a *models.NotFoundError if the user does not exist.
	DeleteUser(ctx context.Context, id int64) error

	// ListUsers returns all users keyed by ID.
	ListUsers(ctx context.Context) (map[int64]*models.User, error)

	// CreateExpense appends an expense to the ledger.
	// The expense.ID and expense.CreatedAt fields will be populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	// Returns a *models.NotFoundError if the expense does not exist.
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)

	// ListExpenses returns all expenses in insertion order.
	ListExpenses(ctx context.Context) ([]*models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
