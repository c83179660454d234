package engine

import (
	"sort"

	"github.com/mataresit/dupecheck/internal/model"
)

// ProgressFunc reports scan progress: done anchors out of total receipts.
type ProgressFunc func(done, total int)

// Cluster partitions receipts into duplicate groups using anchor-based
// clustering: each unprocessed receipt becomes the anchor of a candidate
// group, and every later receipt from the same user is compared against
// the anchor only, never against other members. Receipts belonging to
// different users are never compared.
func Cluster(receipts []model.Receipt, criteria model.DetectionCriteria, progress ProgressFunc) []model.DuplicateGroup {
	processed := make(map[string]bool, len(receipts))
	var groups []model.DuplicateGroup

	for i, anchor := range receipts {
		if progress != nil {
			progress(i+1, len(receipts))
		}
		if processed[anchor.ID] {
			continue
		}

		members := []model.Receipt{anchor}
		for _, candidate := range receipts[i+1:] {
			if processed[candidate.ID] || candidate.UserID != anchor.UserID {
				continue
			}
			if ComparePair(anchor, candidate, criteria).IsDuplicate {
				members = append(members, candidate)
				processed[candidate.ID] = true
			}
		}
		processed[anchor.ID] = true

		if len(members) < 2 {
			continue
		}

		// Newest first; the extremal (newest, oldest) pair drives the
		// group's confidence and analysis.
		sort.SliceStable(members, func(a, b int) bool {
			return members[a].CreatedAt.After(members[b].CreatedAt)
		})

		group := model.DuplicateGroup{
			ID:       len(groups) + 1,
			Receipts: members,
		}
		classifyGroup(&group, criteria)
		groups = append(groups, group)
	}

	return groups
}
