package objection

import "time"

const (
	StatusOpen     = "OPEN"
	StatusReviewed = "REVIEWED"
	StatusResolved = "RESOLVED"
)

type Objection struct {
	ID              string     `json:"id"`
	EvaluationID    string     `json:"evaluationId"`
	EmployeeID      string     `json:"employeeId"`
	Message         string     `json:"message"`
	Status          string     `json:"status"`
	ResponseMessage *string    `json:"responseMessage"`
	ResolverUserID  *string    `json:"resolverUserId"`
	ReviewedAt      *time.Time `json:"reviewedAt"`
	ResolvedAt      *time.Time `json:"resolvedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// MineItem is one row of an employee's own objection listing.
type MineItem struct {
	ID              string     `json:"id"`
	EvaluationID    string     `json:"evaluationId"`
	Message         string     `json:"message"`
	Status          string     `json:"status"`
	ResponseMessage *string    `json:"responseMessage"`
	PeriodName      string     `json:"periodName"`
	CreatedAt       time.Time  `json:"createdAt"`
	ReviewedAt      *time.Time `json:"reviewedAt"`
	ResolvedAt      *time.Time `json:"resolvedAt"`
}

// ReviewItem is one row of the reviewer-side listing, joined with the
// employee and period the objection concerns.
type ReviewItem struct {
	ID              string     `json:"id"`
	EvaluationID    string     `json:"evaluationId"`
	Status          string     `json:"status"`
	Message         string     `json:"message"`
	ResponseMessage *string    `json:"responseMessage"`
	FullName        string     `json:"fullName"`
	Unit            string     `json:"unit"`
	JobTitle        string     `json:"jobTitle"`
	PeriodName      string     `json:"periodName"`
	CreatedAt       time.Time  `json:"createdAt"`
	ReviewedAt      *time.Time `json:"reviewedAt"`
	ResolvedAt      *time.Time `json:"resolvedAt"`
}

// ExportRow feeds the CSV export.
type ExportRow struct {
	ID              string
	Status          string
	CreatedAt       time.Time
	PeriodName      string
	EmployeeCode    string
	FullName        string
	Unit            string
	JobTitle        string
	EvaluationID    string
	Message         string
	ResponseMessage *string
}
