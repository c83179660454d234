package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mataresit/dupecheck/internal/model"
)

// RecommendationCounts breaks down groups by recommended action.
type RecommendationCounts struct {
	DeleteOlder  int `json:"delete_older"`
	ManualReview int `json:"manual_review"`
	Merge        int `json:"merge"`
}

// ReportSummary holds the aggregate counts for a detection run.
type ReportSummary struct {
	Recommendations RecommendationCounts `json:"recommendations"`
	TotalReceipts   int                  `json:"total_receipts"`
	DuplicateGroups int                  `json:"duplicate_groups"`
	// TotalDuplicates counts every receipt appearing in any group.
	TotalDuplicates int `json:"total_duplicates"`
	// PotentialSavings sums the totals of all non-newest group members,
	// the amount recoverable if every group collapsed to one receipt.
	PotentialSavings float64 `json:"potential_savings"`
}

// Report is the exportable artifact of a detection run.
type Report struct {
	GeneratedAt     time.Time               `json:"generated_at"`
	RunID           string                  `json:"run_id"`
	Criteria        model.DetectionCriteria `json:"criteria"`
	Summary         ReportSummary           `json:"summary"`
	DuplicateGroups []model.DuplicateGroup  `json:"duplicate_groups"`
}

// BuildReport aggregates a detection result into its report artifact.
func BuildReport(result *DetectionResult) Report {
	summary := ReportSummary{
		TotalReceipts:   len(result.Receipts),
		DuplicateGroups: len(result.Groups),
	}

	for _, group := range result.Groups {
		summary.TotalDuplicates += len(group.Receipts)
		for _, older := range group.OlderReceipts() {
			summary.PotentialSavings += older.Total
		}
		switch group.Recommendation {
		case model.RecommendDeleteOlder:
			summary.Recommendations.DeleteOlder++
		case model.RecommendManualReview:
			summary.Recommendations.ManualReview++
		case model.RecommendMerge:
			summary.Recommendations.Merge++
		}
	}

	return Report{
		GeneratedAt:     result.GeneratedAt,
		RunID:           result.RunID,
		Criteria:        result.Criteria,
		Summary:         summary,
		DuplicateGroups: result.Groups,
	}
}

// WriteReport serializes the report to a JSON file.
func WriteReport(report Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Backup is a full snapshot of the scoped receipts with their line items
// embedded, taken independently of detection.
type Backup struct {
	CreatedAt     time.Time       `json:"created_at"`
	Receipts      []model.Receipt `json:"receipts"`
	TotalReceipts int             `json:"total_receipts"`
}

// Snapshot loads a fresh backup of the scoped receipts.
func (d *Detector) Snapshot(ctx context.Context, scope Scope) (*Backup, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	receipts, err := d.loadSnapshot(ctx, scope)
	if err != nil {
		return nil, err
	}
	return &Backup{
		CreatedAt:     time.Now().UTC(),
		Receipts:      receipts,
		TotalReceipts: len(receipts),
	}, nil
}

// WriteBackup serializes a backup snapshot to a JSON file.
func WriteBackup(backup *Backup, path string) error {
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// ReadBackup loads a backup artifact from disk.
func ReadBackup(path string) (*Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}
	return &backup, nil
}

// Restore writes a backup's receipts and line items back into the store.
func (d *Detector) Restore(ctx context.Context, backup *Backup) error {
	if len(backup.Receipts) == 0 {
		return nil
	}
	if err := d.store.SaveReceipts(ctx, backup.Receipts); err != nil {
		return fmt.Errorf("failed to restore receipts: %w", err)
	}
	var items []model.LineItem
	for _, receipt := range backup.Receipts {
		items = append(items, receipt.LineItems...)
	}
	if len(items) > 0 {
		if err := d.store.SaveLineItems(ctx, items); err != nil {
			return fmt.Errorf("failed to restore line items: %w", err)
		}
	}
	return nil
}
