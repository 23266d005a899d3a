package objection

import "context"

type StoreAPI interface {
	EmployeeIDByUserID(ctx context.Context, userID string) (string, error)
	EvaluationOwnedBy(ctx context.Context, evaluationID, employeeID string) (bool, error)
	CreateObjection(ctx context.Context, evaluationID, employeeID, message string) (string, error)
	GetObjection(ctx context.Context, objectionID string) (Objection, error)
	SaveTransition(ctx context.Context, obj Objection) error
	ListForEmployee(ctx context.Context, employeeID, evaluationID string) ([]MineItem, error)
	ListForManager(ctx context.Context, managerEmployeeID, status string) ([]ReviewItem, error)
	ListAll(ctx context.Context, status string) ([]ReviewItem, error)
	ListExport(ctx context.Context) ([]ExportRow, error)
}
