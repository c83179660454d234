package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mataresit/dupecheck/internal/cli"
	"github.com/mataresit/dupecheck/internal/common"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "dupecheck",
		Short: "🔍 Duplicate receipt detection engine",
		Long: `dupecheck: scans a user's receipts for duplicates using fuzzy merchant
matching and multi-signal confidence scoring, then recommends what to do
with each group: delete the older copies, merge, or review by hand.

Deletion is safety-guarded: runs are dry by default, backups are one
command away, and nothing is removed without --confirm.`,
		PersistentPreRunE: initConfig,
		RunE:              runDetect,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/dupecheck/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("db", "", "path to the receipt database")
	rootCmd.PersistentFlags().String("user", "", "user id to scope the run to")
	rootCmd.PersistentFlags().Bool("all-users", false, "run against every user's receipts, partitioned per user")

	// Detection thresholds
	rootCmd.PersistentFlags().Float64("merchant-threshold", 0.85, "minimum merchant similarity to count as a match")
	rootCmd.PersistentFlags().Float64("amount-tolerance", 0.50, "absolute amount tolerance in currency units")
	rootCmd.PersistentFlags().Int("date-tolerance", 2, "date tolerance in days")
	rootCmd.PersistentFlags().Float64("min-confidence", 0.75, "minimum confidence to call a pair a duplicate")
	rootCmd.PersistentFlags().Bool("require-payment-match", false, "require payment methods to be present and equal")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("scope.user", rootCmd.PersistentFlags().Lookup("user"))
	_ = viper.BindPFlag("scope.all_users", rootCmd.PersistentFlags().Lookup("all-users"))
	_ = viper.BindPFlag("detect.merchant_threshold", rootCmd.PersistentFlags().Lookup("merchant-threshold"))
	_ = viper.BindPFlag("detect.amount_tolerance", rootCmd.PersistentFlags().Lookup("amount-tolerance"))
	_ = viper.BindPFlag("detect.date_tolerance", rootCmd.PersistentFlags().Lookup("date-tolerance"))
	_ = viper.BindPFlag("detect.min_confidence", rootCmd.PersistentFlags().Lookup("min-confidence"))
	_ = viper.BindPFlag("detect.require_payment_match", rootCmd.PersistentFlags().Lookup("require-payment-match"))

	// Add commands
	rootCmd.AddCommand(detectCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(restoreCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(markReviewCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		var userErr *common.UserError
		if errors.As(err, &userErr) {
			fmt.Fprintln(os.Stderr, cli.FormatError(userErr.Error()))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/dupecheck", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("DUPECHECK")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	switch format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	return common.SetupLogger(slogLevel, format)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			slog.Info("dupecheck version", "version", version)
		},
	}
}
