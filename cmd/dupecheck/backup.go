package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mataresit/dupecheck/internal/cli"
	"github.com/mataresit/dupecheck/internal/engine"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the scoped receipts to a JSON file",
		Long: `Write a full snapshot of the scoped receipts, line items embedded, to a
JSON file. Take one before any confirmed deletion.`,
		RunE: runBackup,
	}

	cmd.Flags().StringP("output", "o", "", "backup file path (default: receipts-backup-<date>.json)")
	_ = viper.BindPFlag("backup.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runBackup(cmd *cobra.Command, _ []string) error {
	detector, store, err := newDetector(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	backup, err := detector.Snapshot(cmd.Context(), scopeFromConfig())
	if err != nil {
		return err
	}

	path := viper.GetString("backup.output")
	if path == "" {
		path = fmt.Sprintf("receipts-backup-%s.json", time.Now().Format("2006-01-02"))
	}

	if err := engine.WriteBackup(backup, path); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Backed up %d receipts to %s", backup.TotalReceipts, path)))
	return nil
}

func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore receipts from a backup file",
		RunE:  runRestore,
	}

	cmd.Flags().StringP("input", "i", "", "backup file to restore from (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = viper.BindPFlag("restore.input", cmd.Flags().Lookup("input"))

	return cmd
}

func runRestore(cmd *cobra.Command, _ []string) error {
	detector, store, err := newDetector(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	backup, err := engine.ReadBackup(viper.GetString("restore.input"))
	if err != nil {
		return err
	}

	if err := detector.Restore(cmd.Context(), backup); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored %d receipts", backup.TotalReceipts)))
	return nil
}
