package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mataresit/dupecheck/internal/common"
	"github.com/mataresit/dupecheck/internal/model"
)

const receiptColumns = `id, user_id, merchant, date, total, tax, currency,
	payment_method, status, predicted_category, image_url, thumbnail_url,
	created_at, updated_at`

// ListReceipts returns all receipts for a user in insertion order. An
// empty userID returns every user's receipts.
func (s *SQLiteStorage) ListReceipts(ctx context.Context, userID string) ([]model.Receipt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM receipts", receiptColumns)
	var args []any
	if userID != "" {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var receipts []model.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	return receipts, nil
}

// GetReceipt fetches a single receipt by id.
func (s *SQLiteStorage) GetReceipt(ctx context.Context, id string) (*model.Receipt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM receipts WHERE id = ?", receiptColumns)
	row := s.db.QueryRowContext(ctx, query, id)

	receipt, err := scanReceipt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("receipt %s: %w", id, common.ErrNotFound)
		}
		return nil, err
	}
	return &receipt, nil
}

// SaveReceipts inserts receipts, used by restore and test seeding.
func (s *SQLiteStorage) SaveReceipts(ctx context.Context, receipts []model.Receipt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReceipts(receipts); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO receipts (
			id, user_id, merchant, date, total, tax, currency,
			payment_method, status, predicted_category, image_url,
			thumbnail_url, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range receipts {
		status := r.Status
		if status == "" {
			status = model.StatusUnreviewed
		}
		createdAt := r.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		updatedAt := r.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = createdAt
		}

		if _, err := stmt.ExecContext(ctx,
			r.ID, r.UserID, r.Merchant, r.Date, r.Total, r.Tax, r.Currency,
			nullable(r.PaymentMethod), string(status), nullable(r.PredictedCategory),
			nullable(r.ImageURL), nullable(r.ThumbnailURL), createdAt, updatedAt,
		); err != nil {
			return fmt.Errorf("failed to save receipt %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// DeleteReceipt removes a receipt; its line items go with it via the
// foreign-key cascade.
func (s *SQLiteStorage) DeleteReceipt(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete receipt %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion of receipt %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("receipt %s: %w", id, common.ErrNotFound)
	}

	return nil
}

// UpdateReceiptStatus annotates a receipt's review status and predicted category.
func (s *SQLiteStorage) UpdateReceiptStatus(ctx context.Context, id string, status model.ReceiptStatus, predictedCategory string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE receipts
		SET status = ?, predicted_category = ?, updated_at = ?
		WHERE id = ?
	`, string(status), nullable(predictedCategory), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update receipt %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of receipt %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("receipt %s: %w", id, common.ErrNotFound)
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row rowScanner) (model.Receipt, error) {
	var r model.Receipt
	var paymentMethod, predictedCategory, imageURL, thumbnailURL sql.NullString
	var status string

	err := row.Scan(
		&r.ID, &r.UserID, &r.Merchant, &r.Date, &r.Total, &r.Tax, &r.Currency,
		&paymentMethod, &status, &predictedCategory, &imageURL, &thumbnailURL,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("failed to scan receipt: %w", err)
	}

	r.PaymentMethod = paymentMethod.String
	r.PredictedCategory = predictedCategory.String
	r.ImageURL = imageURL.String
	r.ThumbnailURL = thumbnailURL.String
	r.Status = model.ReceiptStatus(status)
	return r, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
