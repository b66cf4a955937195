package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/storagetest"
)

func TestSQLiteStore_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		store, err := New(MemoryPath)
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}
		return store
	})
}

func TestSQLiteStore_FileDatabase(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("creates parent directories", func(t *testing.T) {
		if _, err := os.Stat(dbPath); err != nil {
			t.Errorf("expected database file at %s: %v", dbPath, err)
		}
	})

	t.Run("keeps ledger rows after user deletion", func(t *testing.T) {
		alice := &models.User{Name: "Alice", Email: "alice@example.com", Mobile: "1234567890"}
		bob := &models.User{Name: "Bob", Email: "bob@example.com", Mobile: "1234567891"}
		for _, u := range []*models.User{alice, bob} {
			if err := store.CreateUser(ctx, u); err != nil {
				t.Fatalf("CreateUser failed: %v", err)
			}
		}

		expense := &models.Expense{
			PayerID:      alice.ID,
			Amount:       decimal.NewFromInt(100),
			Participants: []int64{alice.ID, bob.ID},
			Splits: []models.SplitSpec{
				{Method: models.SplitPercentage, Percentage: decimal.NewFromInt(30)},
				{Method: models.SplitPercentage, Percentage: decimal.NewFromInt(70)},
			},
			SplitAmounts: []decimal.Decimal{decimal.NewFromInt(30), decimal.NewFromInt(70)},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteUser(ctx, bob.ID); err != nil {
			t.Fatalf("DeleteUser failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if len(got.Participants) != 2 || got.Participants[1] != bob.ID {
			t.Errorf("participants = %v, want [%d %d]", got.Participants, alice.ID, bob.ID)
		}
		if !got.Splits[1].Percentage.Equal(decimal.NewFromInt(70)) {
			t.Errorf("percentage = %s, want 70", got.Splits[1].Percentage)
		}

		t.Logf("Expense %d survived deletion of user %d", got.ID, bob.ID)
	})
}
