package reports

import "sort"

// BuildHeatmap pivots raw score cells into an employee by KPI matrix.
// KPI columns are sorted by title; employees keep the order cells arrive
// in. Missing cells stay nil so the client can render gaps.
func BuildHeatmap(cells []HeatmapCell) Heatmap {
	kpiSet := make(map[string]struct{})
	for _, c := range cells {
		kpiSet[c.KPITitle] = struct{}{}
	}
	kpis := make([]string, 0, len(kpiSet))
	for title := range kpiSet {
		kpis = append(kpis, title)
	}
	sort.Strings(kpis)

	kpiIndex := make(map[string]int, len(kpis))
	for i, title := range kpis {
		kpiIndex[title] = i
	}

	rowIndex := make(map[string]int)
	rows := make([]HeatmapRow, 0)
	for _, c := range cells {
		idx, ok := rowIndex[c.EmployeeID]
		if !ok {
			idx = len(rows)
			rowIndex[c.EmployeeID] = idx
			rows = append(rows, HeatmapRow{
				EmployeeID:   c.EmployeeID,
				EmployeeName: c.EmployeeName,
				Scores:       make([]*float64, len(kpis)),
			})
		}
		score := c.Score
		rows[idx].Scores[kpiIndex[c.KPITitle]] = &score
	}

	return Heatmap{KPIs: kpis, Rows: rows}
}

// BuildUnitPeriodHeatmap pivots (unit, period) averages into a unit by
// period matrix. Period columns keep the order cells arrive in, which the
// store guarantees is chronological; units are sorted by name. Missing
// cells stay nil.
func BuildUnitPeriodHeatmap(cells []UnitPeriodCell) UnitPeriodHeatmap {
	periods := make([]string, 0)
	periodIndex := make(map[string]int)
	unitSet := make(map[string]struct{})
	for _, c := range cells {
		if _, ok := periodIndex[c.PeriodID]; !ok {
			periodIndex[c.PeriodID] = len(periods)
			periods = append(periods, c.PeriodName)
		}
		unitSet[c.Unit] = struct{}{}
	}

	units := make([]string, 0, len(unitSet))
	for unit := range unitSet {
		units = append(units, unit)
	}
	sort.Strings(units)

	rows := make([]UnitPeriodRow, len(units))
	rowIndex := make(map[string]int, len(units))
	for i, unit := range units {
		rowIndex[unit] = i
		rows[i] = UnitPeriodRow{Unit: unit, Averages: make([]*float64, len(periods))}
	}
	for _, c := range cells {
		avg := c.Average
		rows[rowIndex[c.Unit]].Averages[periodIndex[c.PeriodID]] = &avg
	}

	return UnitPeriodHeatmap{Periods: periods, Rows: rows}
}

// CompareUnits joins current and previous unit averages by unit name.
// Units present only in the previous period are dropped; units new in the
// current period carry nil previous and delta.
func CompareUnits(current, previous []UnitAverage) []UnitComparisonRow {
	prevByUnit := make(map[string]float64, len(previous))
	for _, u := range previous {
		prevByUnit[u.Unit] = u.Average
	}

	out := make([]UnitComparisonRow, 0, len(current))
	for _, u := range current {
		row := UnitComparisonRow{Unit: u.Unit, CurrentAverage: u.Average}
		if prev, ok := prevByUnit[u.Unit]; ok {
			p := prev
			d := u.Average - prev
			row.PreviousAverage = &p
			row.Delta = &d
		}
		out = append(out, row)
	}
	return out
}
