package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// CreateExpense persists an expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	createdAt := expense.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO expenses (payer_id, amount, created_at) VALUES (?, ?, ?)",
		expense.PayerID, expense.Amount.String(), createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read expense id: %w", err)
	}

	for i, participant := range expense.Participants {
		split := expense.Splits[i]
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits
			 (expense_id, position, participant_id, method, stated_amount, stated_percentage, split_amount)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, participant, string(split.Method),
			split.Amount.String(), split.Percentage.String(), expense.SplitAmounts[i].String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Populate generated fields only once the record is committed.
	expense.ID = id
	expense.CreatedAt = createdAt

	return nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, payer_id, amount, created_at FROM expenses WHERE id = ?",
		id,
	).Scan(&expense.ID, &expense.PayerID, &expense.Amount, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "expense", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	byID := map[int64]*models.Expense{expense.ID: expense}
	if err := s.loadSplits(ctx, "WHERE expense_id = ?", []any{id}, byID); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpenses retrieves every expense in insertion order.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, payer_id, amount, created_at FROM expenses ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]*models.Expense, 0)
	byID := make(map[int64]*models.Expense)
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(&e.ID, &e.PayerID, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
		byID[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	if err := s.loadSplits(ctx, "", nil, byID); err != nil {
		return nil, err
	}

	return expenses, nil
}

// loadSplits appends split rows, in position order, to the matching expenses.
func (s *SQLiteStore) loadSplits(ctx context.Context, where string, args []any, byID map[int64]*models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, participant_id, method, stated_amount, stated_percentage, split_amount
		 FROM expense_splits `+where+` ORDER BY expense_id, position`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			expenseID, participant int64
			method                 string
			split                  models.SplitSpec
			owed                   decimal.Decimal
		)
		if err := rows.Scan(&expenseID, &participant, &method, &split.Amount, &split.Percentage, &owed); err != nil {
			return fmt.Errorf("failed to scan expense split: %w", err)
		}
		e, ok := byID[expenseID]
		if !ok {
			continue
		}
		split.Method = models.SplitMethod(method)
		e.Participants = append(e.Participants, participant)
		e.Splits = append(e.Splits, split)
		e.SplitAmounts = append(e.SplitAmounts, owed)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return nil
}
