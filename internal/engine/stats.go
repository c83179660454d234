package engine

// ConfidenceBands counts groups by confidence bracket for the operator
// summary: above 90%, between 80% and 90%, and at or below 80%.
type ConfidenceBands struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Stats aggregates the human-review statistics for a detection run.
type Stats struct {
	Bands            ConfidenceBands      `json:"confidence_bands"`
	Recommendations  RecommendationCounts `json:"recommendations"`
	TotalReceipts    int                  `json:"total_receipts"`
	DuplicateGroups  int                  `json:"duplicate_groups"`
	TotalDuplicates  int                  `json:"total_duplicates"`
	PotentialSavings float64              `json:"potential_savings"`
}

// BuildStats computes confidence-band and recommendation counts for a
// detection result. No mutation occurs.
func BuildStats(result *DetectionResult) Stats {
	report := BuildReport(result)
	stats := Stats{
		Recommendations:  report.Summary.Recommendations,
		TotalReceipts:    report.Summary.TotalReceipts,
		DuplicateGroups:  report.Summary.DuplicateGroups,
		TotalDuplicates:  report.Summary.TotalDuplicates,
		PotentialSavings: report.Summary.PotentialSavings,
	}

	for _, group := range result.Groups {
		switch {
		case group.Confidence > 0.90:
			stats.Bands.High++
		case group.Confidence > 0.80:
			stats.Bands.Medium++
		default:
			stats.Bands.Low++
		}
	}

	return stats
}
