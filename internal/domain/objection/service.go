package objection

import (
	"context"
	"strings"
	"time"

	"perfeval/internal/domain/auth"
)

// AccessPolicy answers whether the actor may act on the target employee.
type AccessPolicy interface {
	CanActOn(ctx context.Context, actor auth.UserContext, targetEmployeeID string) (bool, error)
}

type Service struct {
	store  StoreAPI
	access AccessPolicy
	now    func() time.Time
}

func NewService(store StoreAPI, access AccessPolicy) *Service {
	return &Service{store: store, access: access, now: time.Now}
}

// Create files an objection against an evaluation. Only the evaluation's own
// employee may file one.
func (s *Service) Create(ctx context.Context, actor auth.UserContext, evaluationID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" || evaluationID == "" {
		return "", ErrMessageRequired
	}

	employeeID, err := s.store.EmployeeIDByUserID(ctx, actor.UserID)
	if err != nil {
		return "", err
	}

	owned, err := s.store.EvaluationOwnedBy(ctx, evaluationID, employeeID)
	if err != nil {
		return "", err
	}
	if !owned {
		return "", ErrForbidden
	}

	return s.store.CreateObjection(ctx, evaluationID, employeeID, message)
}

// Review transitions an objection to REVIEWED. Allowed for HR, CEO and the
// objecting employee's manager.
func (s *Service) Review(ctx context.Context, actor auth.UserContext, objectionID, responseMessage string) error {
	obj, err := s.authorizedObjection(ctx, actor, objectionID)
	if err != nil {
		return err
	}
	if err := ApplyReview(&obj, responseMessage, actor.UserID, s.now()); err != nil {
		return err
	}
	return s.store.SaveTransition(ctx, obj)
}

// Resolve transitions an objection to RESOLVED with a mandatory response.
func (s *Service) Resolve(ctx context.Context, actor auth.UserContext, objectionID, responseMessage string) error {
	obj, err := s.authorizedObjection(ctx, actor, objectionID)
	if err != nil {
		return err
	}
	if err := ApplyResolve(&obj, responseMessage, actor.UserID, s.now()); err != nil {
		return err
	}
	return s.store.SaveTransition(ctx, obj)
}

func (s *Service) authorizedObjection(ctx context.Context, actor auth.UserContext, objectionID string) (Objection, error) {
	obj, err := s.store.GetObjection(ctx, objectionID)
	if err != nil {
		return Objection{}, err
	}
	allowed, err := s.access.CanActOn(ctx, actor, obj.EmployeeID)
	if err != nil {
		return Objection{}, err
	}
	if !allowed {
		return Objection{}, ErrForbidden
	}
	return obj, nil
}

// ListMine returns the caller's own objections, optionally filtered to one
// evaluation.
func (s *Service) ListMine(ctx context.Context, actor auth.UserContext, evaluationID string) ([]MineItem, error) {
	employeeID, err := s.store.EmployeeIDByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.store.ListForEmployee(ctx, employeeID, evaluationID)
}

// List returns the reviewer-side listing: managers see their direct
// reports' objections, HR/CEO see all. Optionally filtered by status.
func (s *Service) List(ctx context.Context, actor auth.UserContext, status string) ([]ReviewItem, error) {
	if auth.IsElevated(actor.Role) {
		return s.store.ListAll(ctx, status)
	}
	managerEmployeeID, err := s.store.EmployeeIDByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.store.ListForManager(ctx, managerEmployeeID, status)
}

func (s *Service) Export(ctx context.Context) ([]ExportRow, error) {
	return s.store.ListExport(ctx)
}
