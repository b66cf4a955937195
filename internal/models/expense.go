package models

import "github.com/shopspring/decimal"

// SplitMethod names the rule used to divide an expense among participants.
type SplitMethod string

const (
	SplitEqual      SplitMethod = "equal"
	SplitExact      SplitMethod = "exact"
	SplitPercentage SplitMethod = "percentage"
)

// SplitSpec is one participant's entry in an expense's split rule.
// Only the field matching Method is meaningful.
type SplitSpec struct {
	Method SplitMethod

	// Amount is the stated share for exact splits.
	Amount decimal.Decimal

	// Percentage is the stated share (0-100) for percentage splits.
	Percentage decimal.Decimal
}

// Expense is a single payment recorded in the ledger.
// Participants, Splits and SplitAmounts are aligned by position.
type Expense struct {
	// ID is assigned sequentially by the store.
	ID int64

	// PayerID is the user who paid the full Amount.
	PayerID int64

	// Amount is the total paid, always positive.
	Amount decimal.Decimal

	// Participants may contain the payer and may contain duplicates.
	Participants []int64

	// Splits is the split rule as submitted.
	Splits []SplitSpec

	// SplitAmounts[i] is what Participants[i] owes for this expense.
	SplitAmounts []decimal.Decimal

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Clone returns a deep copy so callers never share slices with the store.
func (e *Expense) Clone() *Expense {
	c := *e
	c.Participants = append([]int64(nil), e.Participants...)
	c.Splits = append([]SplitSpec(nil), e.Splits...)
	c.SplitAmounts = append([]decimal.Decimal(nil), e.SplitAmounts...)
	return &c
}

// BalanceEntry is one user's line on the balance sheet.
type BalanceEntry struct {
	UserID int64
	Name   string

	// Balance is positive when the user is owed money, negative when they owe.
	Balance decimal.Decimal
}

// UserExpense is one expense as seen from a participant.
type UserExpense struct {
	ExpenseID   int64
	PayerName   string
	Amount      decimal.Decimal
	SplitAmount decimal.Decimal
}
