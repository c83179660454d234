package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mataresit/dupecheck/internal/common"
	"github.com/mataresit/dupecheck/internal/model"
	"github.com/mataresit/dupecheck/internal/service"
)

// Scope selects which receipts a run operates on. Exactly one of UserID
// or AllUsers must be set; running without an owner scope is a fatal
// configuration error.
type Scope struct {
	UserID   string
	AllUsers bool
}

// Validate checks that the scope names an owner.
func (s Scope) Validate() error {
	if s.UserID == "" && !s.AllUsers {
		return common.ErrMissingUserScope
	}
	return nil
}

// DetectionResult is the outcome of one detection run: a fresh snapshot
// of the scoped receipts plus the duplicate groups found in it.
type DetectionResult struct {
	GeneratedAt time.Time
	RunID       string
	Scope       Scope
	Criteria    model.DetectionCriteria
	Receipts    []model.Receipt
	Groups      []model.DuplicateGroup
}

// Detector runs duplicate detection against a receipt store. All store
// calls are issued sequentially; deletions must stay individually
// attributable for error reporting, so nothing here runs concurrently.
type Detector struct {
	store    service.ReceiptStore
	criteria model.DetectionCriteria
}

// New creates a Detector. The criteria are validated once here and are
// immutable for the detector's lifetime.
func New(store service.ReceiptStore, criteria model.DetectionCriteria) (*Detector, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: receipt store is required", common.ErrMissingConfig)
	}
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidCriteria, err)
	}
	return &Detector{store: store, criteria: criteria}, nil
}

// Criteria returns the thresholds this detector runs with.
func (d *Detector) Criteria() model.DetectionCriteria {
	return d.criteria
}

// Detect loads a fresh snapshot of the scoped receipts and their line
// items, then clusters and classifies duplicate groups. Load failures
// are fatal; no mutation happens during detection.
func (d *Detector) Detect(ctx context.Context, scope Scope, progress ProgressFunc) (*DetectionResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	receipts, err := d.loadSnapshot(ctx, scope)
	if err != nil {
		return nil, err
	}

	slog.Info("scanning receipts for duplicates",
		"receipts", len(receipts),
		"user", scope.UserID,
		"all_users", scope.AllUsers)

	groups := Cluster(receipts, d.criteria, progress)

	slog.Info("duplicate scan complete",
		"receipts", len(receipts),
		"groups", len(groups))

	return &DetectionResult{
		GeneratedAt: time.Now().UTC(),
		RunID:       uuid.NewString(),
		Scope:       scope,
		Criteria:    d.criteria,
		Receipts:    receipts,
		Groups:      groups,
	}, nil
}

// loadSnapshot fetches the scoped receipts with their line items
// attached. Any store failure aborts the run.
func (d *Detector) loadSnapshot(ctx context.Context, scope Scope) ([]model.Receipt, error) {
	userID := scope.UserID
	if scope.AllUsers {
		userID = ""
	}

	receipts, err := d.store.ListReceipts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	if len(receipts) == 0 {
		return receipts, nil
	}

	ids := make([]string, len(receipts))
	for i, r := range receipts {
		ids[i] = r.ID
	}

	items, err := d.store.ListLineItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}

	byReceipt := make(map[string][]model.LineItem, len(receipts))
	for _, item := range items {
		byReceipt[item.ReceiptID] = append(byReceipt[item.ReceiptID], item)
	}
	for i := range receipts {
		receipts[i].LineItems = byReceipt[receipts[i].ID]
	}

	return receipts, nil
}
