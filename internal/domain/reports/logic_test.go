package reports

import "testing"

func TestBuildHeatmapPivot(t *testing.T) {
	cells := []HeatmapCell{
		{EmployeeID: "e1", EmployeeName: "Alice", KPITitle: "Quality", Score: 80},
		{EmployeeID: "e1", EmployeeName: "Alice", KPITitle: "Delivery", Score: 70},
		{EmployeeID: "e2", EmployeeName: "Bob", KPITitle: "Quality", Score: 65},
	}

	hm := BuildHeatmap(cells)

	if len(hm.KPIs) != 2 || hm.KPIs[0] != "Delivery" || hm.KPIs[1] != "Quality" {
		t.Fatalf("unexpected kpi columns: %v", hm.KPIs)
	}
	if len(hm.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(hm.Rows))
	}

	alice := hm.Rows[0]
	if alice.EmployeeID != "e1" {
		t.Fatalf("expected first row for e1, got %s", alice.EmployeeID)
	}
	if alice.Scores[0] == nil || *alice.Scores[0] != 70 {
		t.Fatalf("expected Delivery 70 for e1")
	}
	if alice.Scores[1] == nil || *alice.Scores[1] != 80 {
		t.Fatalf("expected Quality 80 for e1")
	}

	bob := hm.Rows[1]
	if bob.Scores[0] != nil {
		t.Fatalf("expected nil Delivery cell for e2")
	}
	if bob.Scores[1] == nil || *bob.Scores[1] != 65 {
		t.Fatalf("expected Quality 65 for e2")
	}
}

func TestBuildHeatmapEmpty(t *testing.T) {
	hm := BuildHeatmap(nil)
	if len(hm.KPIs) != 0 || len(hm.Rows) != 0 {
		t.Fatalf("expected empty heatmap, got %+v", hm)
	}
}

func TestBuildUnitPeriodHeatmap(t *testing.T) {
	cells := []UnitPeriodCell{
		{Unit: "Support", PeriodID: "p1", PeriodName: "2025 Q1", Average: 62},
		{Unit: "Sales", PeriodID: "p2", PeriodName: "2025 Q2", Average: 78},
		{Unit: "Support", PeriodID: "p2", PeriodName: "2025 Q2", Average: 70},
	}

	hm := BuildUnitPeriodHeatmap(cells)

	if len(hm.Periods) != 2 || hm.Periods[0] != "2025 Q1" || hm.Periods[1] != "2025 Q2" {
		t.Fatalf("unexpected period columns: %v", hm.Periods)
	}
	if len(hm.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(hm.Rows))
	}

	sales := hm.Rows[0]
	if sales.Unit != "Sales" {
		t.Fatalf("expected Sales first, got %s", sales.Unit)
	}
	if sales.Averages[0] != nil {
		t.Fatalf("expected nil Q1 cell for Sales")
	}
	if sales.Averages[1] == nil || *sales.Averages[1] != 78 {
		t.Fatalf("expected Q2 78 for Sales")
	}

	support := hm.Rows[1]
	if support.Averages[0] == nil || *support.Averages[0] != 62 {
		t.Fatalf("expected Q1 62 for Support")
	}
	if support.Averages[1] == nil || *support.Averages[1] != 70 {
		t.Fatalf("expected Q2 70 for Support")
	}
}

func TestCompareUnits(t *testing.T) {
	current := []UnitAverage{
		{Unit: "Sales", Average: 75},
		{Unit: "Support", Average: 68},
	}
	previous := []UnitAverage{
		{Unit: "Sales", Average: 70},
		{Unit: "Finance", Average: 90},
	}

	rows := CompareUnits(current, previous)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	sales := rows[0]
	if sales.PreviousAverage == nil || *sales.PreviousAverage != 70 {
		t.Fatalf("expected previous 70 for Sales")
	}
	if sales.Delta == nil || *sales.Delta != 5 {
		t.Fatalf("expected delta 5 for Sales, got %v", sales.Delta)
	}

	support := rows[1]
	if support.PreviousAverage != nil || support.Delta != nil {
		t.Fatalf("expected nil previous and delta for Support")
	}
}
