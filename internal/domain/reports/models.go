package reports

type TopPerformer struct {
	EmployeeID string  `json:"employeeId"`
	FullName   string  `json:"fullName"`
	Unit       string  `json:"unit"`
	JobTitle   string  `json:"jobTitle"`
	FinalScore float64 `json:"finalScore"`
}

// HeatmapCell is one raw score row pulled from storage before pivoting.
type HeatmapCell struct {
	EmployeeID   string
	EmployeeName string
	KPITitle     string
	Score        float64
}

type HeatmapRow struct {
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	Scores       []*float64 `json:"scores"`
}

type Heatmap struct {
	KPIs []string     `json:"kpis"`
	Rows []HeatmapRow `json:"rows"`
}

// UnitPeriodCell is one raw (unit, period) average pulled from storage
// before pivoting.
type UnitPeriodCell struct {
	Unit       string
	PeriodID   string
	PeriodName string
	Average    float64
}

type UnitPeriodRow struct {
	Unit     string     `json:"unit"`
	Averages []*float64 `json:"averages"`
}

type UnitPeriodHeatmap struct {
	Periods []string        `json:"periods"`
	Rows    []UnitPeriodRow `json:"rows"`
}

type UnitAverage struct {
	Unit    string  `json:"unit"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type UnitComparisonRow struct {
	Unit            string   `json:"unit"`
	CurrentAverage  float64  `json:"currentAverage"`
	PreviousAverage *float64 `json:"previousAverage"`
	Delta           *float64 `json:"delta"`
}

type RiskRow struct {
	EmployeeID string  `json:"employeeId"`
	FullName   string  `json:"fullName"`
	Unit       string  `json:"unit"`
	JobTitle   string  `json:"jobTitle"`
	FinalScore float64 `json:"finalScore"`
}

type TrendPoint struct {
	PeriodID   string  `json:"periodId"`
	PeriodName string  `json:"periodName"`
	Average    float64 `json:"average"`
	Count      int     `json:"count"`
}

// SummaryData feeds the PDF period summary.
type SummaryData struct {
	PeriodName string
	Units      []UnitAverage
	Top        []TopPerformer
	Risk       []RiskRow
}
