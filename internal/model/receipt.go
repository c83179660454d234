// Package model defines the core domain models used throughout the application.
package model

import "time"

// ReceiptStatus tracks where a receipt sits in the review lifecycle.
type ReceiptStatus string

// Receipt status constants.
const (
	StatusUnreviewed ReceiptStatus = "unreviewed"
	StatusReviewed   ReceiptStatus = "reviewed"
)

// IsValid reports whether the status is one of the known lifecycle tags.
func (s ReceiptStatus) IsValid() bool {
	switch s {
	case StatusUnreviewed, StatusReviewed:
		return true
	}
	return false
}

// Receipt represents a single financial transaction record owned by a user.
// Receipts are created by the ingestion pipeline; this engine only ever
// annotates or deletes them.
type Receipt struct {
	Date              time.Time     `json:"date"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	ID                string        `json:"id"`
	UserID            string        `json:"user_id"`
	Merchant          string        `json:"merchant"`
	Currency          string        `json:"currency"`
	PaymentMethod     string        `json:"payment_method,omitempty"`
	PredictedCategory string        `json:"predicted_category,omitempty"`
	ImageURL          string        `json:"image_url,omitempty"`
	ThumbnailURL      string        `json:"thumbnail_url,omitempty"`
	Status            ReceiptStatus `json:"status"`
	LineItems         []LineItem    `json:"line_items,omitempty"`
	Total             float64       `json:"total"`
	Tax               float64       `json:"tax,omitempty"`
}

// LineItem represents one itemized entry on a receipt. Line items are
// exclusively owned by their receipt; deleting the receipt deletes them.
type LineItem struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	ReceiptID   string    `json:"receipt_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
}
