package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mataresit/dupecheck/internal/cli"
)

func markReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark-review",
		Short: "Flag duplicate groups for manual review",
		Long: `Reset the status of group members to unreviewed and prefix their
predicted category with a duplicate-check marker so they surface in the
review queue. With no --group flags, every group recommended
manual_review is flagged; otherwise exactly the named groups are.`,
		RunE: runMarkReview,
	}

	cmd.Flags().IntSlice("group", nil, "group id to flag (repeatable)")
	_ = viper.BindPFlag("review.groups", cmd.Flags().Lookup("group"))

	return cmd
}

func runMarkReview(cmd *cobra.Command, _ []string) error {
	detector, store, err := newDetector(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := detector.Detect(cmd.Context(), scopeFromConfig(), scanProgress())
	if err != nil {
		return err
	}

	summary, err := detector.MarkForReview(cmd.Context(), result, viper.GetIntSlice("review.groups"))
	if err != nil {
		return err
	}

	if len(summary.Errors) > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Marked %d receipts for review, %d failed",
			len(summary.Marked), len(summary.Errors))))
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Marked %d receipts for review", len(summary.Marked))))
	return nil
}
