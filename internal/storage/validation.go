package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mataresit/dupecheck/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrEmptySlice     = errors.New("slice cannot be empty")
	ErrInvalidStatus  = errors.New("invalid receipt status")
	ErrInvalidReceipt = errors.New("invalid receipt")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateReceipts validates a slice of receipts.
func validateReceipts(receipts []model.Receipt) error {
	if receipts == nil {
		return fmt.Errorf("%w: receipts", ErrNilParameter)
	}
	if len(receipts) == 0 {
		return fmt.Errorf("%w: receipts", ErrEmptySlice)
	}

	for i, r := range receipts {
		if err := validateReceipt(&r); err != nil {
			return fmt.Errorf("receipt at index %d: %w", i, err)
		}
	}
	return nil
}

// validateReceipt validates a single receipt.
func validateReceipt(r *model.Receipt) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidReceipt)
	}
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("%w: missing user id", ErrInvalidReceipt)
	}
	if r.Status != "" && !r.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, r.Status)
	}
	return nil
}

// validateLineItems validates a slice of line items.
func validateLineItems(items []model.LineItem) error {
	if items == nil {
		return fmt.Errorf("%w: line items", ErrNilParameter)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: line items", ErrEmptySlice)
	}

	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("line item at index %d: missing id", i)
		}
		if strings.TrimSpace(item.ReceiptID) == "" {
			return fmt.Errorf("line item at index %d: missing receipt id", i)
		}
	}
	return nil
}
