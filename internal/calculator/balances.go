package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// BalanceSheet replays expenses in ledger order and returns every user's net
// balance, sorted by user ID.
//
// Algorithm:
// - Every known user starts at zero, so users without activity still appear
// - For each expense: payer is credited the full amount
// - Each participant is debited their split amount
//
// IDs referenced by expenses but missing from users (deleted users) are kept
// with an empty name so that the balances still sum to zero.
func BalanceSheet(users map[int64]*models.User, expenses []*models.Expense) []models.BalanceEntry {
	balances := make(map[int64]decimal.Decimal, len(users))
	for id := range users {
		balances[id] = decimal.Zero
	}

	for _, e := range expenses {
		balances[e.PayerID] = balances[e.PayerID].Add(e.Amount)
		for i, participant := range e.Participants {
			balances[participant] = balances[participant].Sub(e.SplitAmounts[i])
		}
	}

	entries := make([]models.BalanceEntry, 0, len(balances))
	for id, balance := range balances {
		entry := models.BalanceEntry{UserID: id, Balance: balance}
		if u, ok := users[id]; ok {
			entry.Name = u.Name
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UserID < entries[j].UserID
	})

	return entries
}

// UserExpenses returns, in ledger order, every expense the user participates
// in along with the user's own share. With duplicate participant entries the
// first position wins.
func UserExpenses(userID int64, users map[int64]*models.User, expenses []*models.Expense) []models.UserExpense {
	history := make([]models.UserExpense, 0)
	for _, e := range expenses {
		pos := indexOf(e.Participants, userID)
		if pos < 0 {
			continue
		}

		var payerName string
		if payer, ok := users[e.PayerID]; ok {
			payerName = payer.Name
		}

		history = append(history, models.UserExpense{
			ExpenseID:   e.ID,
			PayerName:   payerName,
			Amount:      e.Amount,
			SplitAmount: e.SplitAmounts[pos],
		})
	}
	return history
}

// Total sums the balances of a sheet. It is zero for any consistent ledger.
func Total(entries []models.BalanceEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Balance)
	}
	return sum
}

func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
