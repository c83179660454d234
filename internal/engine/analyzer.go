// Package engine implements duplicate receipt detection: pairwise
// analysis, anchor-based clustering, group classification, and the
// safety-guarded actions that operate on the results.
package engine

import (
	"strings"

	"github.com/mataresit/dupecheck/internal/match"
	"github.com/mataresit/dupecheck/internal/model"
)

// Signal weights. The four signals are always evaluated, so the maximum
// attainable score is fixed at 100 and confidence is score/100.
const (
	merchantWeight      = 40.0
	amountWeight        = 30.0
	dateWeight          = 20.0
	paymentWeight       = 10.0
	partialPaymentScore = 5.0
	maxScore            = 100.0
)

// Matched-criteria names reported on a duplicate pair.
const (
	CriterionMerchant      = "merchant_match"
	CriterionAmount        = "amount_match"
	CriterionDate          = "date_match"
	CriterionPaymentMethod = "payment_method_match"
)

// minMatchedCriteria is the floor preventing a single strong signal
// (e.g. an identical amount by coincidence) from triggering a false
// positive on its own.
const minMatchedCriteria = 2

// PairResult is the outcome of analyzing one pair of receipts.
type PairResult struct {
	// Criteria lists the matched-signal names, in evaluation order.
	Criteria []string
	// Confidence is the weighted score normalized to [0,1].
	Confidence float64
	// IsDuplicate holds iff Confidence meets the minimum and at least
	// two distinct criteria matched.
	IsDuplicate bool
}

// ComparePair computes the weighted confidence score for two receipts
// belonging to the same user.
func ComparePair(a, b model.Receipt, criteria model.DetectionCriteria) PairResult {
	var score float64
	var matched []string

	if similarity := match.StringSimilarity(a.Merchant, b.Merchant); similarity >= criteria.MerchantFuzzyThreshold {
		score += merchantWeight * similarity
		matched = append(matched, CriterionMerchant)
	}

	amountDiff := a.Total - b.Total
	if amountDiff < 0 {
		amountDiff = -amountDiff
	}
	if amountDiff <= criteria.AmountTolerance {
		score += amountWeight * proximity(amountDiff, criteria.AmountTolerance)
		matched = append(matched, CriterionAmount)
	}

	dateDiff := match.DateDifferenceDays(a.Date, b.Date)
	if dateDiff <= criteria.DateToleranceDays {
		score += dateWeight * proximity(float64(dateDiff), float64(criteria.DateToleranceDays))
		matched = append(matched, CriterionDate)
	}

	paymentA := strings.TrimSpace(a.PaymentMethod)
	paymentB := strings.TrimSpace(b.PaymentMethod)
	switch {
	case paymentA != "" && paymentB != "":
		if strings.EqualFold(paymentA, paymentB) {
			score += paymentWeight
			matched = append(matched, CriterionPaymentMethod)
		}
	case !criteria.RequirePaymentMethodMatch:
		// A missing payment method on either side earns flat partial
		// credit but never counts as a matched criterion.
		score += partialPaymentScore
	}

	confidence := score / maxScore
	return PairResult{
		Criteria:    matched,
		Confidence:  confidence,
		IsDuplicate: confidence >= criteria.MinimumConfidence && len(matched) >= minMatchedCriteria,
	}
}

// proximity maps a difference inside a tolerance window to (0,1], with 1
// meaning identical. A zero tolerance only admits exact matches, which
// score full weight.
func proximity(diff, tolerance float64) float64 {
	if tolerance <= 0 {
		return 1
	}
	return 1 - diff/tolerance
}
