package kpi

import "math"

// ValidateTemplateItems enforces the template creation invariants: at least
// one item, each item naming a kpi with weight in (0, 100], no duplicate
// kpis, and weights summing to exactly 100 after rounding to 3 decimals.
func ValidateTemplateItems(items []TemplateItemInput) error {
	if len(items) == 0 {
		return ErrItemsRequired
	}

	seen := make(map[string]struct{}, len(items))
	sum := 0.0
	for _, item := range items {
		if item.KPIID == "" || item.Weight <= 0 || item.Weight > 100 {
			return ErrInvalidItem
		}
		if _, dup := seen[item.KPIID]; dup {
			return ErrDuplicateKPIInTemplate
		}
		seen[item.KPIID] = struct{}{}
		sum += item.Weight
	}

	if math.Round(sum*1000)/1000 != 100 {
		return ErrWeightSum
	}
	return nil
}

// ValidateScale enforces the KPI invariant scale_min < scale_max.
func ValidateScale(scaleMin, scaleMax float64) error {
	if scaleMin >= scaleMax {
		return ErrInvalidScaleRange
	}
	return nil
}
