package evaluation

import "time"

// SubmittedScore is one caller-supplied KPI score. Weights never come from
// the caller; they are frozen on the resolved template.
type SubmittedScore struct {
	KPIID   string  `json:"kpiId"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

// ScoredItem is a validated (score, weight) pair ready for scoring, ordered
// the way the template items are.
type ScoredItem struct {
	KPIID   string
	Score   float64
	Weight  float64
	Comment string
}

type Evaluation struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employeeId"`
	PeriodID        string    `json:"periodId"`
	EvaluatorUserID string    `json:"evaluatorUserId"`
	TemplateID      string    `json:"templateId"`
	FinalScore      float64   `json:"finalScore"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ScoreRow is a persisted per-KPI score. Weight is snapshotted at evaluation
// time so later template changes never alter historical results.
type ScoreRow struct {
	KPIID   string  `json:"kpiId"`
	Score   float64 `json:"score"`
	Weight  float64 `json:"weight"`
	Comment *string `json:"comment"`
}

type CreateResult struct {
	EvaluationID string  `json:"evaluationId"`
	TemplateID   string  `json:"templateId"`
	FinalScore   float64 `json:"finalScore"`
}

type EmployeeRef struct {
	ID       string
	Unit     string
	JobTitle string
}

type EmployeeProfile struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Unit     string `json:"unit"`
	JobTitle string `json:"jobTitle"`
}

type Summary struct {
	ID         string    `json:"id"`
	FinalScore float64   `json:"finalScore"`
	PeriodName string    `json:"periodName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type BreakdownRow struct {
	Title   string  `json:"title"`
	Type    string  `json:"type"`
	Score   float64 `json:"score"`
	Weight  float64 `json:"weight"`
	Comment *string `json:"comment"`
}

// Result is what an employee sees for their own evaluation in one period.
type Result struct {
	Employee   EmployeeProfile `json:"employee"`
	Evaluation Summary         `json:"evaluation"`
	Breakdown  []BreakdownRow  `json:"breakdown"`
}
