package kpi

import "sort"

// Specificity counts the non-null scope fields a template defines.
// Both-specific beats one-specific beats generic during resolution.
func Specificity(t Template) int {
	score := 0
	if t.AppliesToUnit != nil {
		score++
	}
	if t.AppliesToJobTitle != nil {
		score++
	}
	return score
}

// MostSpecific picks the single winning template among scope-matching
// candidates: specificity desc, then version desc, then created_at desc.
// Id breaks exact ties so repeated resolves are stable. Returns nil when
// there is no candidate.
func MostSpecific(candidates []Template) *Template {
	if len(candidates) == 0 {
		return nil
	}
	ordered := make([]Template, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := Specificity(ordered[i]), Specificity(ordered[j])
		if si != sj {
			return si > sj
		}
		if ordered[i].Version != ordered[j].Version {
			return ordered[i].Version > ordered[j].Version
		}
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})
	winner := ordered[0]
	return &winner
}
