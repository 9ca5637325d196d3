// Package moderation holds the pure view logic of the administrator
// dashboard: filter predicates, the createdAt sort, and the derived counts.
// Nothing here touches the store; callers pass in the record projection and
// get a new one back.
package moderation

import (
	"sort"

	"github.com/CampusVoice/campus-voice-backend/types"
)

// SortDirection orders the view by createdAt.
type SortDirection string

const (
	SortDesc SortDirection = "desc"
	SortAsc  SortDirection = "asc"
)

// ParseSortDirection maps a query value onto a direction; anything other
// than "asc" means newest-first, matching the baseline store order.
func ParseSortDirection(s string) SortDirection {
	if s == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

// Filter holds the optional equality predicates. A zero field passes
// everything through.
type Filter struct {
	Category types.Category
	Faculty  string
}

func (f Filter) matches(r *types.Feedback) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Faculty != "" && r.Faculty != f.Faculty {
		return false
	}
	return true
}

// ApplyView filters and sorts a record set. It is pure: the input slice is
// never mutated and re-application with the same arguments yields the same
// sequence. The sort is stable; records without a createdAt compare equal to
// each other and keep their input order.
func ApplyView(records []*types.Feedback, filter Filter, dir SortDirection) []*types.Feedback {
	out := make([]*types.Feedback, 0, len(records))
	for _, r := range records {
		if filter.matches(r) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreatedAt, out[j].CreatedAt
		if dir == SortAsc {
			return a.Before(b)
		}
		return b.Before(a)
	})

	return out
}

// Counts derives the aggregate totals for the current view: overall count,
// per-category breakdown over the full set, and the size of the filtered
// projection. Recomputed on every view change, never persisted.
func Counts(all, filtered []*types.Feedback) types.FeedbackCounts {
	perCategory := make(map[types.Category]int)
	for _, r := range all {
		perCategory[r.Category]++
	}
	return types.FeedbackCounts{
		Total:       len(all),
		Filtered:    len(filtered),
		PerCategory: perCategory,
	}
}
