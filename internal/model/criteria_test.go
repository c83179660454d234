package model

import "testing"

func TestDefaultCriteria(t *testing.T) {
	c := DefaultCriteria()

	if c.MerchantFuzzyThreshold != 0.85 {
		t.Errorf("MerchantFuzzyThreshold = %v, want 0.85", c.MerchantFuzzyThreshold)
	}
	if c.AmountTolerance != 0.50 {
		t.Errorf("AmountTolerance = %v, want 0.50", c.AmountTolerance)
	}
	if c.DateToleranceDays != 2 {
		t.Errorf("DateToleranceDays = %v, want 2", c.DateToleranceDays)
	}
	if c.MinimumConfidence != 0.75 {
		t.Errorf("MinimumConfidence = %v, want 0.75", c.MinimumConfidence)
	}
	if c.RequirePaymentMethodMatch {
		t.Error("RequirePaymentMethodMatch should default to false")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default criteria should validate, got %v", err)
	}
}

func TestDetectionCriteriaValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DetectionCriteria)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *DetectionCriteria) {}},
		{name: "threshold zero", mutate: func(c *DetectionCriteria) { c.MerchantFuzzyThreshold = 0 }},
		{name: "threshold one", mutate: func(c *DetectionCriteria) { c.MerchantFuzzyThreshold = 1 }},
		{name: "threshold negative", mutate: func(c *DetectionCriteria) { c.MerchantFuzzyThreshold = -0.1 }, wantErr: true},
		{name: "threshold above one", mutate: func(c *DetectionCriteria) { c.MerchantFuzzyThreshold = 1.1 }, wantErr: true},
		{name: "amount tolerance zero", mutate: func(c *DetectionCriteria) { c.AmountTolerance = 0 }},
		{name: "amount tolerance negative", mutate: func(c *DetectionCriteria) { c.AmountTolerance = -0.01 }, wantErr: true},
		{name: "date tolerance zero", mutate: func(c *DetectionCriteria) { c.DateToleranceDays = 0 }},
		{name: "date tolerance negative", mutate: func(c *DetectionCriteria) { c.DateToleranceDays = -1 }, wantErr: true},
		{name: "confidence negative", mutate: func(c *DetectionCriteria) { c.MinimumConfidence = -0.5 }, wantErr: true},
		{name: "confidence above one", mutate: func(c *DetectionCriteria) { c.MinimumConfidence = 1.01 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCriteria()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
