package evaluation

// WeightedScore computes sum(score*weight)/sum(weight) over validated items.
// Template weights sum to 100 by invariant, so the normal path divides by
// 100; a non-positive weight sum yields 0 instead of dividing by zero.
// No rounding happens here.
func WeightedScore(items []ScoredItem) float64 {
	sumWeights := 0.0
	for _, item := range items {
		sumWeights += item.Weight
	}
	if sumWeights <= 0 {
		return 0
	}

	sum := 0.0
	for _, item := range items {
		sum += item.Score * item.Weight
	}
	return sum / sumWeights
}
