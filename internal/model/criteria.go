package model

import "fmt"

// Default detection thresholds. These match the tuned values used in
// production runs; override them per run via configuration.
const (
	DefaultMerchantFuzzyThreshold = 0.85
	DefaultAmountTolerance        = 0.50
	DefaultDateToleranceDays      = 2
	DefaultMinimumConfidence      = 0.75
)

// DetectionCriteria holds the tunable thresholds for a detection run.
// A criteria value is immutable once a run starts: every pure function
// receives it by value rather than reading ambient state.
type DetectionCriteria struct {
	// MerchantFuzzyThreshold is the minimum normalized string similarity
	// for the merchant signal to count as a match. Range [0,1].
	MerchantFuzzyThreshold float64 `json:"merchant_fuzzy_threshold"`
	// AmountTolerance is the absolute currency-unit tolerance for the
	// amount signal.
	AmountTolerance float64 `json:"amount_tolerance"`
	// DateToleranceDays is the day window for the date signal.
	DateToleranceDays int `json:"date_tolerance_days"`
	// MinimumConfidence is the minimum aggregate score for a pair to be
	// called a duplicate. Range [0,1].
	MinimumConfidence float64 `json:"minimum_confidence"`
	// RequirePaymentMethodMatch controls whether a missing payment method
	// on either side still earns partial credit.
	RequirePaymentMethodMatch bool `json:"require_payment_method_match"`
}

// DefaultCriteria returns the production default thresholds.
func DefaultCriteria() DetectionCriteria {
	return DetectionCriteria{
		MerchantFuzzyThreshold: DefaultMerchantFuzzyThreshold,
		AmountTolerance:        DefaultAmountTolerance,
		DateToleranceDays:      DefaultDateToleranceDays,
		MinimumConfidence:      DefaultMinimumConfidence,
	}
}

// Validate checks the criteria before any work begins. Invalid criteria
// are a fatal configuration error.
func (c DetectionCriteria) Validate() error {
	if c.MerchantFuzzyThreshold < 0 || c.MerchantFuzzyThreshold > 1 {
		return fmt.Errorf("merchant fuzzy threshold must be in [0,1], got %v", c.MerchantFuzzyThreshold)
	}
	if c.AmountTolerance < 0 {
		return fmt.Errorf("amount tolerance must be non-negative, got %v", c.AmountTolerance)
	}
	if c.DateToleranceDays < 0 {
		return fmt.Errorf("date tolerance must be non-negative, got %d", c.DateToleranceDays)
	}
	if c.MinimumConfidence < 0 || c.MinimumConfidence > 1 {
		return fmt.Errorf("minimum confidence must be in [0,1], got %v", c.MinimumConfidence)
	}
	return nil
}
