package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"github.com/mataresit/dupecheck/internal/common"
	"github.com/mataresit/dupecheck/internal/engine"
	"github.com/mataresit/dupecheck/internal/model"
	"github.com/mataresit/dupecheck/internal/storage"
)

// databasePath resolves the configured database location, defaulting to
// the standard local data directory.
func databasePath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "dupecheck", "dupecheck.db"), nil
}

// criteriaFromConfig materializes the configured thresholds into an
// immutable criteria value for this run.
func criteriaFromConfig() model.DetectionCriteria {
	return model.DetectionCriteria{
		MerchantFuzzyThreshold:    viper.GetFloat64("detect.merchant_threshold"),
		AmountTolerance:           viper.GetFloat64("detect.amount_tolerance"),
		DateToleranceDays:         viper.GetInt("detect.date_tolerance"),
		MinimumConfidence:         viper.GetFloat64("detect.min_confidence"),
		RequirePaymentMethodMatch: viper.GetBool("detect.require_payment_match"),
	}
}

// scopeFromConfig reads the owner scope for this run. Validation happens
// inside the engine before any work begins.
func scopeFromConfig() engine.Scope {
	return engine.Scope{
		UserID:   viper.GetString("scope.user"),
		AllUsers: viper.GetBool("scope.all_users"),
	}
}

// newDetector opens the store, brings its schema current, and builds a
// detector from configuration. The caller must Close the returned store.
func newDetector(ctx context.Context) (*engine.Detector, *storage.SQLiteStorage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, common.NewUserError("failed to open receipt database", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, common.NewUserError("failed to migrate receipt database", err)
	}

	detector, err := engine.New(store, criteriaFromConfig())
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return detector, store, nil
}

// scanProgress returns a progress callback backed by a terminal progress
// bar, created lazily once the receipt count is known.
func scanProgress() engine.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Scanning receipts"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	}
}
