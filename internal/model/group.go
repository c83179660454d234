package model

// Recommendation is the action suggested for a duplicate group.
type Recommendation string

// Recommendation constants. The classifier assigns exactly one of these
// to every group.
const (
	RecommendDeleteOlder  Recommendation = "delete_older"
	RecommendMerge        Recommendation = "merge"
	RecommendManualReview Recommendation = "manual_review"
)

// IsValid reports whether the recommendation is one of the known actions.
func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendDeleteOlder, RecommendMerge, RecommendManualReview:
		return true
	}
	return false
}

// GroupAnalysis holds the per-signal metrics computed from a group's
// extremal pair (newest member vs oldest member).
type GroupAnalysis struct {
	MerchantSimilarity  float64  `json:"merchant_similarity"`
	DateDifferenceDays  int      `json:"date_difference_days"`
	AmountDifference    float64  `json:"amount_difference"`
	PaymentMethodMatch  bool     `json:"payment_method_match"`
	LineItemsSimilarity *float64 `json:"line_items_similarity,omitempty"`
}

// DuplicateGroup is a cluster of receipts judged to represent the same
// real-world transaction. Groups are transient: computed per run and
// never persisted unless exported.
type DuplicateGroup struct {
	// Receipts is ordered by CreatedAt descending, newest first.
	Receipts []Receipt `json:"receipts"`
	// Criteria is the set of matched-signal names from the extremal pair.
	Criteria       []string       `json:"criteria"`
	Recommendation Recommendation `json:"recommendation"`
	Analysis       GroupAnalysis  `json:"analysis"`
	// Confidence is derived from the newest/oldest pair only, not from
	// all pairwise combinations inside the group.
	Confidence float64 `json:"confidence"`
	// ID is sequential within a run.
	ID int `json:"id"`
}

// Newest returns the most recently created receipt in the group.
func (g *DuplicateGroup) Newest() Receipt {
	return g.Receipts[0]
}

// Oldest returns the earliest created receipt in the group.
func (g *DuplicateGroup) Oldest() Receipt {
	return g.Receipts[len(g.Receipts)-1]
}

// OlderReceipts returns every member except the newest. This is the
// deletion set when the group is recommended delete_older.
func (g *DuplicateGroup) OlderReceipts() []Receipt {
	return g.Receipts[1:]
}
