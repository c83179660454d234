package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mataresit/dupecheck/internal/cli"
	"github.com/mataresit/dupecheck/internal/common"
	"github.com/mataresit/dupecheck/internal/engine"
)

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Scan receipts for duplicates",
		Long: `Scan the scoped receipts for duplicate groups and print a summary.
Nothing is mutated; follow up with export, delete, or mark-review.`,
		RunE: runDetect,
	}
}

func runDetect(cmd *cobra.Command, _ []string) error {
	detector, store, err := newDetector(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	slog.Info(cli.FormatTitle("Scanning for duplicate receipts..."))

	result, err := detector.Detect(cmd.Context(), scopeFromConfig(), scanProgress())
	if err != nil {
		return err
	}

	report := engine.BuildReport(result)
	fmt.Println(cli.RenderBox("Duplicate Scan", summarize(report)))

	for _, group := range result.Groups {
		common.LogInfo("duplicate group", common.Fields{
			"id":             group.ID,
			"receipts":       len(group.Receipts),
			"confidence":     fmt.Sprintf("%.2f", group.Confidence),
			"recommendation": group.Recommendation,
			"criteria":       strings.Join(group.Criteria, ","),
		})
	}

	return nil
}

func summarize(report engine.Report) string {
	return fmt.Sprintf(`Receipts scanned: %d
Duplicate groups: %d
Duplicate receipts: %d

Recommendations:
  delete older:  %d
  merge:         %d
  manual review: %d

Potential savings: %.2f`,
		report.Summary.TotalReceipts,
		report.Summary.DuplicateGroups,
		report.Summary.TotalDuplicates,
		report.Summary.Recommendations.DeleteOlder,
		report.Summary.Recommendations.Merge,
		report.Summary.Recommendations.ManualReview,
		report.Summary.PotentialSavings)
}
