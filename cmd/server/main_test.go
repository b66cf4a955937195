package main

import (
	"testing"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/storage/memory"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

func TestOpenStore(t *testing.T) {
	store, err := openStore(config.Config{StoreBackend: config.BackendMemory})
	if err != nil {
		t.Fatalf("openStore(memory) failed: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Errorf("memory backend returned %T", store)
	}
	store.Close()

	store, err = openStore(config.Config{StoreBackend: config.BackendSQLite, DBPath: sqlite.MemoryPath})
	if err != nil {
		t.Fatalf("openStore(sqlite) failed: %v", err)
	}
	if _, ok := store.(*sqlite.SQLiteStore); !ok {
		t.Errorf("sqlite backend returned %T", store)
	}
	store.Close()
}
