package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mataresit/dupecheck/internal/cli"
	"github.com/mataresit/dupecheck/internal/common"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the older copies in delete_older groups",
		Long: `Compute the deletion set from every group recommended delete_older (all
members except the newest) and delete it, one receipt at a time. Line
items go with their receipts.

Without --confirm this is a dry run: the deletion set is reported and
nothing is touched.`,
		RunE: runDelete,
	}

	cmd.Flags().Bool("dry-run", false, "report the deletion set without mutating anything")
	cmd.Flags().Bool("confirm", false, "actually delete receipts")
	_ = viper.BindPFlag("delete.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("delete.confirm", cmd.Flags().Lookup("confirm"))

	return cmd
}

func runDelete(cmd *cobra.Command, _ []string) error {
	confirm := viper.GetBool("delete.confirm")
	if viper.GetBool("delete.dry_run") {
		confirm = false
	}

	detector, store, err := newDetector(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := detector.Detect(cmd.Context(), scopeFromConfig(), scanProgress())
	if err != nil {
		return err
	}

	summary, err := detector.DeleteOlder(cmd.Context(), result, confirm)
	if err != nil {
		return err
	}

	if summary.DryRun {
		content := fmt.Sprintf(`Receipts that would be deleted: %d
Recoverable amount: %.2f

Re-run with --confirm to delete them. Take a backup first.`,
			len(summary.Planned), summary.Savings)
		fmt.Println(cli.RenderBox("Dry Run", content))
		for _, id := range summary.Planned {
			slog.Info("would delete receipt", "id", id)
		}
		return nil
	}

	for _, itemErr := range summary.Errors {
		common.LogError(errors.New(itemErr.Message), "deletion failed", common.Fields{"id": itemErr.ID})
	}

	if len(summary.Errors) > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Deleted %d receipts, %d failed",
			len(summary.Deleted), len(summary.Errors))))
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d receipts", len(summary.Deleted))))
	return nil
}
