package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mataresit/dupecheck/internal/cli"
	"github.com/mataresit/dupecheck/internal/engine"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a duplicate report to a JSON file",
		RunE:  runExport,
	}

	cmd.Flags().StringP("output", "o", "", "report file path (default: duplicate-report-<date>.json)")
	_ = viper.BindPFlag("export.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	detector, store, err := newDetector(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := detector.Detect(cmd.Context(), scopeFromConfig(), scanProgress())
	if err != nil {
		return err
	}

	path := viper.GetString("export.output")
	if path == "" {
		path = fmt.Sprintf("duplicate-report-%s.json", time.Now().Format("2006-01-02"))
	}

	report := engine.BuildReport(result)
	if err := engine.WriteReport(report, path); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Report written to %s (%d groups)", path, len(report.DuplicateGroups))))
	return nil
}
