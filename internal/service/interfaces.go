// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/mataresit/dupecheck/internal/model"
)

// ReceiptStore defines the contract for the persistence layer the engine
// runs against. Deleting a receipt cascades deletion of its line items.
type ReceiptStore interface {
	// ListReceipts returns all receipts for a user, in insertion order.
	// An empty userID returns every user's receipts.
	ListReceipts(ctx context.Context, userID string) ([]model.Receipt, error)
	// ListLineItems returns the line items belonging to the given receipts.
	ListLineItems(ctx context.Context, receiptIDs []string) ([]model.LineItem, error)
	// GetReceipt fetches a single receipt by id.
	GetReceipt(ctx context.Context, id string) (*model.Receipt, error)
	// SaveReceipts inserts receipts, used by restore and test seeding.
	// The detection engine itself never creates receipts.
	SaveReceipts(ctx context.Context, receipts []model.Receipt) error
	// SaveLineItems inserts line items for already-saved receipts.
	SaveLineItems(ctx context.Context, items []model.LineItem) error
	// DeleteReceipt removes a receipt and, by cascade, its line items.
	DeleteReceipt(ctx context.Context, id string) error
	// UpdateReceiptStatus annotates a receipt's review status and
	// predicted category.
	UpdateReceiptStatus(ctx context.Context, id string, status model.ReceiptStatus, predictedCategory string) error

	// Migrate brings the schema up to the expected version.
	Migrate(ctx context.Context) error
	Close() error
}
