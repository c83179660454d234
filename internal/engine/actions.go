package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mataresit/dupecheck/internal/model"
)

// ReviewMarker prefixes the predicted category of receipts flagged for
// manual duplicate review.
const ReviewMarker = "DUPLICATE_CHECK:"

// ItemError records a single per-receipt failure inside a batch. Batches
// never abort on item failures; every error is surfaced to the operator.
type ItemError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// DeleteSummary reports the outcome of a deletion pass. In a dry run only
// Planned and Savings are populated.
type DeleteSummary struct {
	// Planned is the deletion set: every member except the newest of
	// each group recommended delete_older.
	Planned []string    `json:"planned"`
	Deleted []string    `json:"deleted"`
	Errors  []ItemError `json:"errors"`
	// Savings is the summed total of the planned deletions.
	Savings float64 `json:"savings"`
	DryRun  bool    `json:"dry_run"`
}

// DeleteOlder computes the deletion set from every group recommended
// delete_older and, when confirm is set, executes it one receipt at a
// time. A failed deletion is recorded and the batch continues; each
// deletion is its own unit of work with no rollback across the batch.
func (d *Detector) DeleteOlder(ctx context.Context, result *DetectionResult, confirm bool) (*DeleteSummary, error) {
	summary := &DeleteSummary{DryRun: !confirm}

	var targets []model.Receipt
	for _, group := range result.Groups {
		if group.Recommendation != model.RecommendDeleteOlder {
			continue
		}
		targets = append(targets, group.OlderReceipts()...)
	}

	for _, receipt := range targets {
		summary.Planned = append(summary.Planned, receipt.ID)
		summary.Savings += receipt.Total
	}

	if !confirm {
		slog.Info("dry run, no receipts deleted", "planned", len(summary.Planned))
		return summary, nil
	}

	for _, receipt := range targets {
		if err := d.store.DeleteReceipt(ctx, receipt.ID); err != nil {
			slog.Error("failed to delete receipt", "id", receipt.ID, "error", err)
			summary.Errors = append(summary.Errors, ItemError{ID: receipt.ID, Message: err.Error()})
			continue
		}
		summary.Deleted = append(summary.Deleted, receipt.ID)
	}

	slog.Info("deletion batch complete",
		"deleted", len(summary.Deleted),
		"errors", len(summary.Errors))

	return summary, nil
}

// ReviewSummary reports the outcome of a mark-for-review pass.
type ReviewSummary struct {
	Marked []string    `json:"marked"`
	Errors []ItemError `json:"errors"`
}

// MarkForReview flags duplicate groups for human review: every member's
// status is reset to unreviewed and its predicted category gains the
// review marker prefix. With no group ids, all groups recommended
// manual_review are flagged; with explicit ids, exactly those groups are.
// Re-invocation is safe: already-marked receipts keep a single prefix.
func (d *Detector) MarkForReview(ctx context.Context, result *DetectionResult, groupIDs []int) (*ReviewSummary, error) {
	wanted := make(map[int]bool, len(groupIDs))
	for _, id := range groupIDs {
		wanted[id] = true
	}

	summary := &ReviewSummary{}
	for _, group := range result.Groups {
		if len(groupIDs) == 0 {
			if group.Recommendation != model.RecommendManualReview {
				continue
			}
		} else if !wanted[group.ID] {
			continue
		}

		for _, receipt := range group.Receipts {
			category := receipt.PredictedCategory
			if !strings.HasPrefix(category, ReviewMarker) {
				category = strings.TrimSpace(ReviewMarker + " " + category)
			}
			if err := d.store.UpdateReceiptStatus(ctx, receipt.ID, model.StatusUnreviewed, category); err != nil {
				slog.Error("failed to mark receipt for review", "id", receipt.ID, "error", err)
				summary.Errors = append(summary.Errors, ItemError{ID: receipt.ID, Message: err.Error()})
				continue
			}
			summary.Marked = append(summary.Marked, receipt.ID)
		}
	}

	slog.Info("mark-for-review complete",
		"marked", len(summary.Marked),
		"errors", len(summary.Errors))

	return summary, nil
}
