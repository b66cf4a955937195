// Package storagetest holds behaviour tests every storage.Store backend must pass.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Run exercises store against the storage.Store contract.
// newStore must return an empty store; Run closes it.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Run("users get sequential ids", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()
		ctx := context.Background()

		for want := int64(1); want <= 3; want++ {
			u := &models.User{Name: "User", Email: "user@example.com", Mobile: "9876543210"}
			if err := store.CreateUser(ctx, u); err != nil {
				t.Fatalf("CreateUser failed: %v", err)
			}
			if u.ID != want {
				t.Errorf("user id = %d, want %d", u.ID, want)
			}
		}
	})

	t.Run("deleted ids are never reused", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()
		ctx := context.Background()

		first := &models.User{Name: "Alice", Email: "alice@example.com", Mobile: "1234567890"}
		second := &models.User{Name: "Bob", Email: "bob@example.com", Mobile: "1234567891"}
		mustCreateUser(t, store, first)
		mustCreateUser(t, store, second)

		if err := store.DeleteUser(ctx, second.ID); err != nil {
			t.Fatalf("DeleteUser failed: %v", err)
		}
		third := &models.User{Name: "Charlie", Email: "charlie@example.com", Mobile: "1234567892"}
		mustCreateUser(t, store, third)
		if third.ID != 3 {
			t.Errorf("id after delete = %d, want 3", third.ID)
		}
	})

	t.Run("get update delete user", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()
		ctx := context.Background()

		u := &models.User{Name: "Alice", Email: "alice@example.com", Mobile: "1234567890"}
		mustCreateUser(t, store, u)

		got, err := store.GetUser(ctx, u.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if *got != *u {
			t.Errorf("GetUser = %+v, want %+v", got, u)
		}

		updated := &models.User{ID: u.ID, Name: "Alicia", Email: "alicia@example.com", Mobile: "0987654321"}
		if err := store.UpdateUser(ctx, updated); err != nil {
			t.Fatalf("UpdateUser failed: %v", err)
		}
		got, _ = store.GetUser(ctx, u.ID)
		if *got != *updated {
			t.Errorf("after update = %+v, want %+v", got, updated)
		}

		users, err := store.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(users) != 1 || users[u.ID].Name != "Alicia" {
			t.Errorf("ListUsers = %v", users)
		}

		if err := store.DeleteUser(ctx, u.ID); err != nil {
			t.Fatalf("DeleteUser failed: %v", err)
		}
		assertNotFound(t, "GetUser", func() error { _, err := store.GetUser(ctx, u.ID); return err })
		assertNotFound(t, "UpdateUser", func() error { return store.UpdateUser(ctx, updated) })
		assertNotFound(t, "DeleteUser", func() error { return store.DeleteUser(ctx, u.ID) })
	})

	t.Run("expenses round trip in order", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()
		ctx := context.Background()

		first := &models.Expense{
			PayerID:      1,
			Amount:       decimal.RequireFromString("100"),
			Participants: []int64{1, 2, 2},
			Splits: []models.SplitSpec{
				{Method: models.SplitExact, Amount: decimal.RequireFromString("50")},
				{Method: models.SplitExact, Amount: decimal.RequireFromString("25.5")},
				{Method: models.SplitExact, Amount: decimal.RequireFromString("24.5")},
			},
			SplitAmounts: []decimal.Decimal{
				decimal.RequireFromString("50"),
				decimal.RequireFromString("25.5"),
				decimal.RequireFromString("24.5"),
			},
		}
		second := &models.Expense{
			PayerID:      2,
			Amount:       decimal.RequireFromString("0.03"),
			Participants: []int64{1, 2, 3},
			Splits: []models.SplitSpec{
				{Method: models.SplitEqual}, {Method: models.SplitEqual}, {Method: models.SplitEqual},
			},
			SplitAmounts: []decimal.Decimal{
				decimal.RequireFromString("0.01"),
				decimal.RequireFromString("0.01"),
				decimal.RequireFromString("0.01"),
			},
		}
		for i, e := range []*models.Expense{first, second} {
			if err := store.CreateExpense(ctx, e); err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
			if e.ID != int64(i+1) {
				t.Errorf("expense id = %d, want %d", e.ID, i+1)
			}
			if e.CreatedAt == 0 {
				t.Error("expected CreatedAt to be set")
			}
		}

		got, err := store.GetExpense(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		assertExpenseEqual(t, got, first)

		all, err := store.ListExpenses(ctx)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("ListExpenses returned %d, want 2", len(all))
		}
		assertExpenseEqual(t, all[0], first)
		assertExpenseEqual(t, all[1], second)

		assertNotFound(t, "GetExpense", func() error { _, err := store.GetExpense(ctx, 99); return err })
	})

	t.Run("returned expenses are copies", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()
		ctx := context.Background()

		e := &models.Expense{
			PayerID:      1,
			Amount:       decimal.NewFromInt(10),
			Participants: []int64{1},
			Splits:       []models.SplitSpec{{Method: models.SplitEqual}},
			SplitAmounts: []decimal.Decimal{decimal.NewFromInt(10)},
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		e.Participants[0] = 42

		got, _ := store.GetExpense(ctx, e.ID)
		got.SplitAmounts[0] = decimal.Zero

		again, _ := store.GetExpense(ctx, e.ID)
		if again.Participants[0] != 1 || !again.SplitAmounts[0].Equal(decimal.NewFromInt(10)) {
			t.Errorf("stored expense was mutated through a returned value: %+v", again)
		}
	})
}

func mustCreateUser(t *testing.T, store storage.Store, u *models.User) {
	t.Helper()
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
}

func assertNotFound(t *testing.T, op string, fn func() error) {
	t.Helper()
	var nf *models.NotFoundError
	if err := fn(); !errors.As(err, &nf) {
		t.Errorf("%s error = %v, want NotFoundError", op, err)
	}
}

func assertExpenseEqual(t *testing.T, got, want *models.Expense) {
	t.Helper()
	if got.ID != want.ID || got.PayerID != want.PayerID || !got.Amount.Equal(want.Amount) {
		t.Errorf("expense header = {%d %d %s}, want {%d %d %s}",
			got.ID, got.PayerID, got.Amount, want.ID, want.PayerID, want.Amount)
	}
	if len(got.Participants) != len(want.Participants) ||
		len(got.Splits) != len(want.Splits) ||
		len(got.SplitAmounts) != len(want.SplitAmounts) {
		t.Fatalf("expense %d lengths differ: got %+v, want %+v", want.ID, got, want)
	}
	for i := range want.Participants {
		if got.Participants[i] != want.Participants[i] {
			t.Errorf("participant[%d] = %d, want %d", i, got.Participants[i], want.Participants[i])
		}
		if got.Splits[i].Method != want.Splits[i].Method ||
			!got.Splits[i].Amount.Equal(want.Splits[i].Amount) ||
			!got.Splits[i].Percentage.Equal(want.Splits[i].Percentage) {
			t.Errorf("split[%d] = %+v, want %+v", i, got.Splits[i], want.Splits[i])
		}
		if !got.SplitAmounts[i].Equal(want.SplitAmounts[i]) {
			t.Errorf("split_amount[%d] = %s, want %s", i, got.SplitAmounts[i], want.SplitAmounts[i])
		}
	}
}
