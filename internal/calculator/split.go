package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// Tolerance bounds the drift an equal split may leave between the sum of the
// shares and the expense amount. Exact and percentage sums are compared exactly.
var Tolerance = decimal.New(1, -12)

var hundred = decimal.NewFromInt(100)

// ComputeSplits returns what each split entry owes out of amount.
// The method of the first entry decides the strategy for all of them; an empty
// list falls back to an equal split, which fails for zero participants.
func ComputeSplits(amount decimal.Decimal, splits []models.SplitSpec) ([]decimal.Decimal, error) {
	method := models.SplitEqual
	if len(splits) > 0 {
		method = splits[0].Method
	}

	switch method {
	case models.SplitExact:
		return exactSplit(amount, splits)
	case models.SplitPercentage:
		return percentageSplit(amount, splits)
	case models.SplitEqual:
		return equalSplit(amount, len(splits))
	default:
		return nil, &models.InvalidSplitError{Reason: "unknown method"}
	}
}

func exactSplit(amount decimal.Decimal, splits []models.SplitSpec) ([]decimal.Decimal, error) {
	amounts := make([]decimal.Decimal, len(splits))
	sum := decimal.Zero
	for i, s := range splits {
		if s.Amount.IsNegative() {
			return nil, &models.InvalidSplitError{Reason: "negative amount"}
		}
		amounts[i] = s.Amount
		sum = sum.Add(s.Amount)
	}
	if !sum.Equal(amount) {
		return nil, &models.InvalidSplitError{Reason: "sum mismatch"}
	}
	return amounts, nil
}

func percentageSplit(amount decimal.Decimal, splits []models.SplitSpec) ([]decimal.Decimal, error) {
	amounts := make([]decimal.Decimal, len(splits))
	sum := decimal.Zero
	for i, s := range splits {
		if s.Percentage.IsNegative() || s.Percentage.GreaterThan(hundred) {
			return nil, &models.InvalidSplitError{Reason: "percentage out of range"}
		}
		sum = sum.Add(s.Percentage)
		amounts[i] = amount.Mul(s.Percentage).Div(hundred)
	}
	if !sum.Equal(hundred) {
		return nil, &models.InvalidSplitError{Reason: "percentage mismatch"}
	}
	return amounts, nil
}

// equalSplit does not redistribute any remainder; each share is amount/count
// at decimal.DivisionPrecision.
func equalSplit(amount decimal.Decimal, count int) ([]decimal.Decimal, error) {
	if count == 0 {
		return nil, &models.InvalidSplitError{Reason: "no participants"}
	}
	share := amount.Div(decimal.NewFromInt(int64(count)))
	amounts := make([]decimal.Decimal, count)
	for i := range amounts {
		amounts[i] = share
	}
	return amounts, nil
}
