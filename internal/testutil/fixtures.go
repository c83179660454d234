package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/mataresit/dupecheck/internal/model"
)

// ReceiptBuilder constructs receipt fixtures with sensible defaults so
// tests only specify the fields they care about.
type ReceiptBuilder struct {
	receipt model.Receipt
}

// NewReceipt starts a builder for a receipt owned by the given user.
func NewReceipt(userID string) *ReceiptBuilder {
	now := time.Now().UTC()
	return &ReceiptBuilder{
		receipt: model.Receipt{
			ID:        uuid.NewString(),
			UserID:    userID,
			Merchant:  "Test Merchant",
			Date:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Total:     10.00,
			Currency:  "USD",
			Status:    model.StatusUnreviewed,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID overrides the generated id.
func (b *ReceiptBuilder) WithID(id string) *ReceiptBuilder {
	b.receipt.ID = id
	return b
}

// WithMerchant sets the merchant name.
func (b *ReceiptBuilder) WithMerchant(merchant string) *ReceiptBuilder {
	b.receipt.Merchant = merchant
	return b
}

// WithDate sets the transaction date.
func (b *ReceiptBuilder) WithDate(date time.Time) *ReceiptBuilder {
	b.receipt.Date = date
	return b
}

// WithTotal sets the receipt total.
func (b *ReceiptBuilder) WithTotal(total float64) *ReceiptBuilder {
	b.receipt.Total = total
	return b
}

// WithPaymentMethod sets the payment method.
func (b *ReceiptBuilder) WithPaymentMethod(method string) *ReceiptBuilder {
	b.receipt.PaymentMethod = method
	return b
}

// WithPredictedCategory sets the predicted category label.
func (b *ReceiptBuilder) WithPredictedCategory(category string) *ReceiptBuilder {
	b.receipt.PredictedCategory = category
	return b
}

// WithCreatedAt sets the audit creation timestamp, which drives
// newest/oldest ordering inside duplicate groups.
func (b *ReceiptBuilder) WithCreatedAt(createdAt time.Time) *ReceiptBuilder {
	b.receipt.CreatedAt = createdAt
	b.receipt.UpdatedAt = createdAt
	return b
}

// WithLineItems attaches line items, filling in ids and the owning
// receipt id.
func (b *ReceiptBuilder) WithLineItems(descriptions ...string) *ReceiptBuilder {
	for _, desc := range descriptions {
		b.receipt.LineItems = append(b.receipt.LineItems, model.LineItem{
			ID:          uuid.NewString(),
			ReceiptID:   b.receipt.ID,
			Description: desc,
			Amount:      1.00,
			CreatedAt:   b.receipt.CreatedAt,
			UpdatedAt:   b.receipt.CreatedAt,
		})
	}
	return b
}

// Build returns the receipt fixture.
func (b *ReceiptBuilder) Build() model.Receipt {
	return b.receipt
}
