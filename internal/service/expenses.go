package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
)

// ExpenseInput is a request to record an expense. Nil fields are missing;
// an empty non-nil slice is present but empty.
type ExpenseInput struct {
	PayerID      *int64
	Amount       *decimal.Decimal
	Participants []int64
	Splits       []models.SplitSpec
}

// AddExpense validates in against the directory, computes the split amounts
// and appends the expense to the ledger. Nothing is stored unless every check
// passes.
func (s *Service) AddExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense, err := s.buildExpense(ctx, in)
	if err != nil {
		slog.Warn("AddExpense rejected", "error", err)
		return nil, s.reject("add_expense", err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "error", err)
		return nil, s.reject("add_expense", err)
	}

	s.metrics.ExpenseCreated(string(expense.Splits[0].Method), expense.Amount.InexactFloat64())
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"payer_id", expense.PayerID,
		"amount", expense.Amount.String(),
		"participants_count", len(expense.Participants),
	)
	return expense, nil
}

// buildExpense runs the validation steps in order and returns the complete
// record. Must be called with the write lock held.
func (s *Service) buildExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	if missing := missingFields(in); len(missing) > 0 {
		return nil, &models.ValidationError{Message: "missing field: " + strings.Join(missing, ", ")}
	}
	if !in.Amount.IsPositive() {
		return nil, &models.ValidationError{Message: "invalid amount"}
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if _, ok := users[*in.PayerID]; !ok {
		return nil, &models.ValidationError{Message: fmt.Sprintf("invalid payer: %d", *in.PayerID)}
	}
	for _, id := range in.Participants {
		if _, ok := users[id]; !ok {
			return nil, &models.ValidationError{Message: fmt.Sprintf("invalid participant: %d", id)}
		}
	}

	if len(in.Participants) != len(in.Splits) {
		return nil, &models.ValidationError{Message: "count mismatch"}
	}

	amounts, err := calculator.ComputeSplits(*in.Amount, in.Splits)
	if err != nil {
		return nil, &models.ValidationError{Message: err.Error(), Err: err}
	}

	return &models.Expense{
		PayerID:      *in.PayerID,
		Amount:       *in.Amount,
		Participants: append([]int64(nil), in.Participants...),
		Splits:       append([]models.SplitSpec(nil), in.Splits...),
		SplitAmounts: amounts,
	}, nil
}

func missingFields(in ExpenseInput) []string {
	var missing []string
	if in.PayerID == nil {
		missing = append(missing, "payer_id")
	}
	if in.Amount == nil {
		missing = append(missing, "amount")
	}
	if in.Participants == nil {
		missing = append(missing, "participants")
	}
	if in.Splits == nil {
		missing = append(missing, "splits")
	}
	return missing
}

// GetExpense returns the expense with the given ID or a *models.NotFoundError.
func (s *Service) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.GetExpense(ctx, id)
}

// ListExpenses returns the ledger in insertion order.
func (s *Service) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.ListExpenses(ctx)
}
