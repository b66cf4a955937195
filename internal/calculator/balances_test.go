package calculator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

func testUsers() map[int64]*models.User {
	return map[int64]*models.User{
		1: {ID: 1, Name: "Alice"},
		2: {ID: 2, Name: "Bob"},
		3: {ID: 3, Name: "Charlie"},
	}
}

func expense(id, payer int64, amount string, participants []int64, shares ...string) *models.Expense {
	e := &models.Expense{ID: id, PayerID: payer, Amount: d(amount), Participants: participants}
	for _, s := range shares {
		e.SplitAmounts = append(e.SplitAmounts, d(s))
	}
	return e
}

func TestBalanceSheet(t *testing.T) {
	tests := []struct {
		name     string
		expenses []*models.Expense
		want     map[int64]string
	}{
		{
			name: "no expenses - everyone at zero",
			want: map[int64]string{1: "0", 2: "0", 3: "0"},
		},
		{
			name: "alice pays 100 split with bob",
			expenses: []*models.Expense{
				expense(1, 1, "100", []int64{1, 2}, "50", "50"),
			},
			want: map[int64]string{1: "50", 2: "-50", 3: "0"},
		},
		{
			name: "payer not among participants",
			expenses: []*models.Expense{
				expense(1, 3, "90", []int64{1, 2}, "30", "60"),
			},
			want: map[int64]string{1: "-30", 2: "-60", 3: "90"},
		},
		{
			name: "expenses offset each other",
			expenses: []*models.Expense{
				expense(1, 1, "100", []int64{1, 2}, "50", "50"),
				expense(2, 2, "100", []int64{1, 2}, "50", "50"),
			},
			want: map[int64]string{1: "0", 2: "0", 3: "0"},
		},
		{
			name: "duplicate participant is debited twice",
			expenses: []*models.Expense{
				expense(1, 1, "30", []int64{2, 2, 3}, "10", "10", "10"),
			},
			want: map[int64]string{1: "30", 2: "-20", 3: "-10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := BalanceSheet(testUsers(), tt.expenses)
			if len(sheet) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(sheet), len(tt.want))
			}
			for i, entry := range sheet {
				if i > 0 && sheet[i-1].UserID >= entry.UserID {
					t.Errorf("entries not sorted by user id: %v", sheet)
				}
				if !entry.Balance.Equal(d(tt.want[entry.UserID])) {
					t.Errorf("user %d balance = %s, want %s", entry.UserID, entry.Balance, tt.want[entry.UserID])
				}
			}
			if !Total(sheet).IsZero() {
				t.Errorf("balances sum to %s, want 0", Total(sheet))
			}
		})
	}
}

func TestBalanceSheet_ConservesMoney(t *testing.T) {
	users := testUsers()
	var expenses []*models.Expense
	amounts := []string{"100", "33.33", "0.01", "250.75", "10"}
	for i, amount := range amounts {
		shares, err := ComputeSplits(d(amount), equal(3))
		if err != nil {
			t.Fatalf("ComputeSplits: %v", err)
		}
		expenses = append(expenses, &models.Expense{
			ID:           int64(i + 1),
			PayerID:      int64(i%3 + 1),
			Amount:       d(amount),
			Participants: []int64{1, 2, 3},
			SplitAmounts: shares,
		})
	}

	sheet := BalanceSheet(users, expenses)
	if Total(sheet).Abs().GreaterThan(Tolerance) {
		t.Errorf("balances sum to %s, want 0 within tolerance", Total(sheet))
	}

	again := BalanceSheet(users, expenses)
	for i := range sheet {
		if sheet[i].UserID != again[i].UserID || !sheet[i].Balance.Equal(again[i].Balance) {
			t.Errorf("recomputed sheet differs at %d: %v vs %v", i, sheet[i], again[i])
		}
	}
}

func TestBalanceSheet_OrphanedUser(t *testing.T) {
	users := testUsers()
	delete(users, 2)

	sheet := BalanceSheet(users, []*models.Expense{
		expense(1, 1, "100", []int64{1, 2}, "50", "50"),
	})

	if len(sheet) != 3 {
		t.Fatalf("got %d entries, want 3", len(sheet))
	}
	orphan := sheet[1]
	if orphan.UserID != 2 || orphan.Name != "" || !orphan.Balance.Equal(d("-50")) {
		t.Errorf("orphan entry = %+v", orphan)
	}
	if !Total(sheet).IsZero() {
		t.Errorf("balances sum to %s, want 0", Total(sheet))
	}
}

func TestUserExpenses(t *testing.T) {
	users := testUsers()
	expenses := []*models.Expense{
		expense(1, 1, "100", []int64{1, 2}, "50", "50"),
		expense(2, 2, "60", []int64{3, 2, 2}, "20", "15", "25"),
		expense(3, 3, "10", []int64{3}, "10"),
	}

	got := UserExpenses(2, users, expenses)
	want := []models.UserExpense{
		{ExpenseID: 1, PayerName: "Alice", Amount: d("100"), SplitAmount: d("50")},
		{ExpenseID: 2, PayerName: "Bob", Amount: d("60"), SplitAmount: d("15")},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d expenses, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ExpenseID != want[i].ExpenseID || got[i].PayerName != want[i].PayerName ||
			!got[i].Amount.Equal(want[i].Amount) || !got[i].SplitAmount.Equal(want[i].SplitAmount) {
			t.Errorf("expense[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	users[4] = &models.User{ID: 4, Name: "Diana"}
	if none := UserExpenses(4, users, expenses); none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil history, got %v", none)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []models.BalanceEntry{
		{UserID: 1, Name: "Alice", Balance: decimal.NewFromInt(50)},
		{UserID: 2, Name: "Bob, Jr.", Balance: decimal.NewFromInt(-50)},
	})
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"User ID,Name,Balance",
		"1,Alice,50",
		`2,"Bob, Jr.",-50`,
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
