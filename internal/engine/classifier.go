package engine

import (
	"strings"

	"github.com/mataresit/dupecheck/internal/match"
	"github.com/mataresit/dupecheck/internal/model"
)

// Recommendation thresholds. Rules are evaluated in order; the first
// matching rule wins.
const (
	deleteOlderConfidence = 0.90
	deleteOlderAmountDiff = 0.01
	deleteOlderDateDiff   = 1
	mergeConfidence       = 0.80
)

// classifyGroup fills in the group's analysis, confidence, criteria and
// recommendation from its extremal pair. The group's receipts must
// already be ordered newest first.
func classifyGroup(group *model.DuplicateGroup, criteria model.DetectionCriteria) {
	newest := group.Newest()
	oldest := group.Oldest()

	amountDiff := newest.Total - oldest.Total
	if amountDiff < 0 {
		amountDiff = -amountDiff
	}

	analysis := model.GroupAnalysis{
		MerchantSimilarity: match.StringSimilarity(newest.Merchant, oldest.Merchant),
		DateDifferenceDays: match.DateDifferenceDays(newest.Date, oldest.Date),
		AmountDifference:   amountDiff,
		PaymentMethodMatch: paymentMethodsEqual(newest, oldest),
	}
	if len(newest.LineItems) > 0 && len(oldest.LineItems) > 0 {
		similarity := match.LineItemSimilarity(newest.LineItems, oldest.LineItems)
		analysis.LineItemsSimilarity = &similarity
	}

	pair := ComparePair(newest, oldest, criteria)

	group.Analysis = analysis
	group.Confidence = pair.Confidence
	group.Criteria = pair.Criteria
	group.Recommendation = recommend(pair.Confidence, analysis)
}

// recommend applies the three-way recommendation policy.
func recommend(confidence float64, analysis model.GroupAnalysis) model.Recommendation {
	switch {
	case confidence > deleteOlderConfidence &&
		analysis.AmountDifference < deleteOlderAmountDiff &&
		analysis.DateDifferenceDays <= deleteOlderDateDiff:
		return model.RecommendDeleteOlder
	case confidence > mergeConfidence:
		return model.RecommendMerge
	default:
		return model.RecommendManualReview
	}
}

func paymentMethodsEqual(a, b model.Receipt) bool {
	pa := strings.TrimSpace(a.PaymentMethod)
	pb := strings.TrimSpace(b.PaymentMethod)
	return pa != "" && pb != "" && strings.EqualFold(pa, pb)
}
