package service

import (
	"context"
	"fmt"
	"io"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
)

// snapshot reads users and expenses under one read lock.
func (s *Service) snapshot(ctx context.Context) (map[int64]*models.User, []*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load users: %w", err)
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return users, expenses, nil
}

// BalanceSheet recomputes every user's net balance from the full ledger.
func (s *Service) BalanceSheet(ctx context.Context) ([]models.BalanceEntry, error) {
	users, expenses, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.BalanceSheet(users, expenses), nil
}

// UserExpenses returns the expenses the user participates in, in ledger order.
// A known user with no expenses gets an empty slice.
func (s *Service) UserExpenses(ctx context.Context, userID int64) ([]models.UserExpense, error) {
	users, expenses, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := users[userID]; !ok {
		return nil, &models.NotFoundError{Kind: "user", ID: userID}
	}
	return calculator.UserExpenses(userID, users, expenses), nil
}

// ExportCSV writes the balance sheet to w as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	sheet, err := s.BalanceSheet(ctx)
	if err != nil {
		return err
	}
	return calculator.WriteCSV(w, sheet)
}
