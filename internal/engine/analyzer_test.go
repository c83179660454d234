package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mataresit/dupecheck/internal/model"
)

func receiptAt(merchant string, date time.Time, total float64, payment string) model.Receipt {
	return model.Receipt{
		ID:            merchant + date.Format("2006-01-02"),
		UserID:        "user-1",
		Merchant:      merchant,
		Date:          date,
		Total:         total,
		PaymentMethod: payment,
		Currency:      "USD",
	}
}

func TestComparePair_ExactDuplicate(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	a := receiptAt("Coffee Shop", date, 15.00, "Visa")
	b := receiptAt("Coffee Shop", date, 15.00, "Visa")

	result := ComparePair(a, b, model.DefaultCriteria())

	assert.True(t, result.IsDuplicate)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
	assert.ElementsMatch(t, []string{
		CriterionMerchant, CriterionAmount, CriterionDate, CriterionPaymentMethod,
	}, result.Criteria)
}

func TestComparePair_MerchantThresholdIsInclusive(t *testing.T) {
	// Twenty characters with three substitutions: similarity is exactly
	// 1 - 3/20 = 0.85, which must count as a merchant match.
	a := receiptAt(strings.Repeat("a", 20), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 10.00, "Visa")
	b := receiptAt(strings.Repeat("a", 17)+"bbb", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 10.00, "Visa")

	result := ComparePair(a, b, model.DefaultCriteria())

	assert.Contains(t, result.Criteria, CriterionMerchant)
}

func TestComparePair_TwoCriteriaFloor(t *testing.T) {
	// Amount matches exactly but nothing else does. Even with the
	// minimum confidence dropped below the resulting score, a single
	// matched criterion must never make a duplicate.
	a := receiptAt("Starbucks", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 15.00, "")
	b := receiptAt("Chipotle", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 15.00, "")

	criteria := model.DefaultCriteria()
	criteria.MinimumConfidence = 0.30

	result := ComparePair(a, b, criteria)

	require.Equal(t, []string{CriterionAmount}, result.Criteria)
	// Full amount weight plus partial payment credit.
	assert.InDelta(t, 0.35, result.Confidence, 1e-9)
	assert.GreaterOrEqual(t, result.Confidence, criteria.MinimumConfidence)
	assert.False(t, result.IsDuplicate)
}

func TestComparePair_NearDuplicateScoring(t *testing.T) {
	// One-character merchant typo, 0.20 amount difference, one day
	// apart, same card. Every signal matches; the graded amount and
	// date contributions hold the confidence just under the default
	// minimum.
	a := receiptAt("Coffee Shop", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 15.00, "Visa")
	b := receiptAt("Coffe Shop", time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), 15.20, "Visa")

	result := ComparePair(a, b, model.DefaultCriteria())

	assert.ElementsMatch(t, []string{
		CriterionMerchant, CriterionAmount, CriterionDate, CriterionPaymentMethod,
	}, result.Criteria)

	// merchant 40*(1-1/11) + amount 30*(1-0.2/0.5) + date 20*(1-1/2) + payment 10
	expected := (40*(1-1.0/11) + 30*0.6 + 20*0.5 + 10) / 100
	assert.InDelta(t, expected, result.Confidence, 1e-6)
	assert.False(t, result.IsDuplicate)
}

func TestComparePair_PartialPaymentCredit(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		paymentA       string
		paymentB       string
		require        bool
		wantConfidence float64
		wantCriterion  bool
	}{
		{
			name:           "both present and equal",
			paymentA:       "Visa",
			paymentB:       "visa",
			wantConfidence: 1.0,
			wantCriterion:  true,
		},
		{
			name:           "missing on one side earns partial credit",
			paymentA:       "Visa",
			paymentB:       "",
			wantConfidence: 0.95,
		},
		{
			name:           "missing and required earns nothing",
			paymentA:       "",
			paymentB:       "",
			require:        true,
			wantConfidence: 0.90,
		},
		{
			name:           "present but different earns nothing",
			paymentA:       "Visa",
			paymentB:       "Mastercard",
			wantConfidence: 0.90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := receiptAt("Coffee Shop", date, 15.00, tt.paymentA)
			b := receiptAt("Coffee Shop", date, 15.00, tt.paymentB)

			criteria := model.DefaultCriteria()
			criteria.RequirePaymentMethodMatch = tt.require

			result := ComparePair(a, b, criteria)

			assert.InDelta(t, tt.wantConfidence, result.Confidence, 1e-9)
			if tt.wantCriterion {
				assert.Contains(t, result.Criteria, CriterionPaymentMethod)
			} else {
				assert.NotContains(t, result.Criteria, CriterionPaymentMethod)
			}
		})
	}
}

func TestComparePair_ConfidenceRange(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	merchants := []string{"Coffee Shop", "Chipotle", ""}
	totals := []float64{0, 15.00, 15.49, 999.99}

	for _, ma := range merchants {
		for _, mb := range merchants {
			for _, da := range dates {
				for _, ta := range totals {
					a := receiptAt(ma, da, ta, "Visa")
					b := receiptAt(mb, dates[0], totals[1], "")
					result := ComparePair(a, b, model.DefaultCriteria())
					assert.GreaterOrEqual(t, result.Confidence, 0.0)
					assert.LessOrEqual(t, result.Confidence, 1.0)
				}
			}
		}
	}
}
