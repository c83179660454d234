package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mataresit/dupecheck/internal/model"
)

// ListLineItems returns the line items belonging to the given receipts.
func (s *SQLiteStorage) ListLineItems(ctx context.Context, receiptIDs []string) ([]model.LineItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if len(receiptIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(receiptIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(receiptIDs))
	for i, id := range receiptIDs {
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, receipt_id, description, amount, created_at, updated_at
		FROM line_items
		WHERE receipt_id IN (%s)
		ORDER BY created_at ASC, id ASC
	`, placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.LineItem
	for rows.Next() {
		var item model.LineItem
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.Description,
			&item.Amount, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}

	return items, nil
}

// SaveLineItems inserts line items for already-saved receipts.
func (s *SQLiteStorage) SaveLineItems(ctx context.Context, items []model.LineItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLineItems(items); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO line_items (
			id, receipt_id, description, amount, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, item := range items {
		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		updatedAt := item.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = createdAt
		}

		if _, err := stmt.ExecContext(ctx,
			item.ID, item.ReceiptID, item.Description, item.Amount,
			createdAt, updatedAt,
		); err != nil {
			return fmt.Errorf("failed to save line item %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}
