package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mataresit/dupecheck/internal/cli"
	"github.com/mataresit/dupecheck/internal/engine"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print confidence-band and recommendation statistics",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	detector, store, err := newDetector(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := detector.Detect(cmd.Context(), scopeFromConfig(), scanProgress())
	if err != nil {
		return err
	}

	stats := engine.BuildStats(result)

	content := fmt.Sprintf(`Receipts: %d
Duplicate groups: %d
Duplicate receipts: %d

Confidence:
  > 90%%:    %d
  80-90%%:   %d
  <= 80%%:   %d

Recommendations:
  delete older:  %d
  merge:         %d
  manual review: %d

Potential savings: %.2f`,
		stats.TotalReceipts,
		stats.DuplicateGroups,
		stats.TotalDuplicates,
		stats.Bands.High,
		stats.Bands.Medium,
		stats.Bands.Low,
		stats.Recommendations.DeleteOlder,
		stats.Recommendations.Merge,
		stats.Recommendations.ManualReview,
		stats.PotentialSavings)

	fmt.Println(cli.RenderBox("Duplicate Statistics", content))
	return nil
}
