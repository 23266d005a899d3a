package evaluation

import "context"

type StoreAPI interface {
	EmployeeRef(ctx context.Context, employeeID string) (EmployeeRef, error)
	PeriodStatus(ctx context.Context, periodID string) (string, error)
	InsertEvaluation(ctx context.Context, eval Evaluation, rows []ScoreRow) (string, error)
	EmployeeProfileByUserID(ctx context.Context, userID string) (EmployeeProfile, error)
	EvaluationFor(ctx context.Context, employeeID, periodID string) (Summary, error)
	Breakdown(ctx context.Context, evaluationID string) ([]BreakdownRow, error)
}
