package evaluation

import (
	"fmt"
	"math"

	"perfeval/internal/domain/kpi"
)

// ValidateScores checks a submitted score set against the resolved template
// items. Rules run in order with the first failure winning: unknown KPI,
// duplicate submission, missing KPI, score range. The returned items follow
// the template item order with weights frozen from the template.
func ValidateScores(items []kpi.ResolvedItem, scores []SubmittedScore) ([]ScoredItem, error) {
	byKPI := make(map[string]kpi.ResolvedItem, len(items))
	for _, item := range items {
		byKPI[item.KPIID] = item
	}

	submitted := make(map[string]SubmittedScore, len(scores))
	for _, s := range scores {
		if _, ok := byKPI[s.KPIID]; !ok {
			return nil, fmt.Errorf("%w: kpi %s", ErrKPINotInTemplate, s.KPIID)
		}
		if _, dup := submitted[s.KPIID]; dup {
			return nil, fmt.Errorf("%w: kpi %s", ErrDuplicateKPIScore, s.KPIID)
		}
		submitted[s.KPIID] = s
	}

	for _, item := range items {
		if _, ok := submitted[item.KPIID]; !ok {
			return nil, fmt.Errorf("%w: kpi %s", ErrMissingKPIScore, item.KPIID)
		}
	}

	out := make([]ScoredItem, 0, len(items))
	for _, item := range items {
		s := submitted[item.KPIID]
		if math.IsNaN(s.Score) || math.IsInf(s.Score, 0) || s.Score < item.ScaleMin || s.Score > item.ScaleMax {
			return nil, fmt.Errorf("%w: kpi %s must be between %g and %g", ErrScoreOutOfRange, item.KPIID, item.ScaleMin, item.ScaleMax)
		}
		out = append(out, ScoredItem{
			KPIID:   item.KPIID,
			Score:   s.Score,
			Weight:  item.Weight,
			Comment: s.Comment,
		})
	}
	return out, nil
}
