package evaluation

import "testing"

func TestWeightedScore(t *testing.T) {
	items := []ScoredItem{
		{Score: 70, Weight: 30},
		{Score: 60, Weight: 30},
		{Score: 75, Weight: 40},
	}
	if got := WeightedScore(items); got != 72.0 {
		t.Fatalf("expected final score 72.0, got %v", got)
	}
}

func TestWeightedScoreEmptyItems(t *testing.T) {
	if got := WeightedScore(nil); got != 0 {
		t.Fatalf("expected 0 for no items, got %v", got)
	}
}

func TestWeightedScoreZeroWeights(t *testing.T) {
	items := []ScoredItem{
		{Score: 90, Weight: 0},
		{Score: 10, Weight: 0},
	}
	if got := WeightedScore(items); got != 0 {
		t.Fatalf("expected 0 for zero weight sum, got %v", got)
	}
}

func TestWeightedScoreNormalizesPartialWeights(t *testing.T) {
	// Weights not summing to 100 still divide by their own sum.
	items := []ScoredItem{
		{Score: 80, Weight: 20},
		{Score: 40, Weight: 20},
	}
	if got := WeightedScore(items); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
}
