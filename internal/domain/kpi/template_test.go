package kpi

import (
	"errors"
	"testing"
)

func TestValidateTemplateItemsAccepts100Sum(t *testing.T) {
	items := []TemplateItemInput{
		{KPIID: "k1", Weight: 30},
		{KPIID: "k2", Weight: 30},
		{KPIID: "k3", Weight: 40},
	}
	if err := ValidateTemplateItems(items); err != nil {
		t.Fatalf("expected valid items, got %v", err)
	}
}

func TestValidateTemplateItemsToleratesRoundingNoise(t *testing.T) {
	items := []TemplateItemInput{
		{KPIID: "k1", Weight: 33.3334},
		{KPIID: "k2", Weight: 33.3333},
		{KPIID: "k3", Weight: 33.3333},
	}
	// Sums to 100 after rounding to 3 decimals.
	if err := ValidateTemplateItems(items); err != nil {
		t.Fatalf("expected rounding-tolerant acceptance, got %v", err)
	}
}

func TestValidateTemplateItemsRejectsBadSum(t *testing.T) {
	items := []TemplateItemInput{
		{KPIID: "k1", Weight: 50},
		{KPIID: "k2", Weight: 49},
	}
	if err := ValidateTemplateItems(items); !errors.Is(err, ErrWeightSum) {
		t.Fatalf("expected ErrWeightSum, got %v", err)
	}
}

func TestValidateTemplateItemsRejectsEmpty(t *testing.T) {
	if err := ValidateTemplateItems(nil); !errors.Is(err, ErrItemsRequired) {
		t.Fatalf("expected ErrItemsRequired, got %v", err)
	}
}

func TestValidateTemplateItemsRejectsBadItem(t *testing.T) {
	cases := [][]TemplateItemInput{
		{{KPIID: "", Weight: 100}},
		{{KPIID: "k1", Weight: 0}},
		{{KPIID: "k1", Weight: -5}},
		{{KPIID: "k1", Weight: 101}},
	}
	for _, items := range cases {
		if err := ValidateTemplateItems(items); !errors.Is(err, ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem for %+v, got %v", items, err)
		}
	}
}

func TestValidateTemplateItemsRejectsDuplicateKPI(t *testing.T) {
	items := []TemplateItemInput{
		{KPIID: "k1", Weight: 50},
		{KPIID: "k1", Weight: 50},
	}
	if err := ValidateTemplateItems(items); !errors.Is(err, ErrDuplicateKPIInTemplate) {
		t.Fatalf("expected ErrDuplicateKPIInTemplate, got %v", err)
	}
}

func TestValidateScale(t *testing.T) {
	if err := ValidateScale(0, 100); err != nil {
		t.Fatalf("expected valid scale, got %v", err)
	}
	if err := ValidateScale(100, 100); !errors.Is(err, ErrInvalidScaleRange) {
		t.Fatalf("expected ErrInvalidScaleRange for equal bounds, got %v", err)
	}
	if err := ValidateScale(10, 5); !errors.Is(err, ErrInvalidScaleRange) {
		t.Fatalf("expected ErrInvalidScaleRange for inverted bounds, got %v", err)
	}
}
