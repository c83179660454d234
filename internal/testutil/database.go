// Package testutil provides test utilities for the dupecheck project:
// in-memory databases with migrations applied and receipt fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/mataresit/dupecheck/internal/model"
	"github.com/mataresit/dupecheck/internal/service"
	"github.com/mataresit/dupecheck/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Store service.ReceiptStore
	t     *testing.T
}

// SetupTestDB creates a new in-memory test database. It automatically
// handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Store: store, t: t}
}

// Seed inserts receipts (and any embedded line items) into the store.
func (db *TestDB) Seed(receipts ...model.Receipt) {
	db.t.Helper()

	ctx := context.Background()
	if err := db.Store.SaveReceipts(ctx, receipts); err != nil {
		db.t.Fatalf("failed to seed receipts: %v", err)
	}

	var items []model.LineItem
	for _, r := range receipts {
		items = append(items, r.LineItems...)
	}
	if len(items) > 0 {
		if err := db.Store.SaveLineItems(ctx, items); err != nil {
			db.t.Fatalf("failed to seed line items: %v", err)
		}
	}
}
