package access

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"perfeval/internal/domain/auth"
)

// StoreAPI is the lookup surface the scoper needs. Both lookups resolve the
// employee row linked to a user account.
type StoreAPI interface {
	EmployeeIDByUserID(ctx context.Context, userID string) (string, error)
	ManagerIDOfEmployee(ctx context.Context, employeeID string) (string, error)
}

// Scoper answers whether an actor may act on a target employee's data.
// MANAGER is limited to direct reports, EMPLOYEE to self, HR/CEO act on anyone.
type Scoper struct {
	Store StoreAPI
}

func NewScoper(store StoreAPI) *Scoper {
	return &Scoper{Store: store}
}

func (s *Scoper) CanActOn(ctx context.Context, actor auth.UserContext, targetEmployeeID string) (bool, error) {
	switch actor.Role {
	case auth.RoleHR, auth.RoleCEO:
		return true, nil
	case auth.RoleManager:
		actorEmployeeID, err := s.Store.EmployeeIDByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		managerID, err := s.Store.ManagerIDOfEmployee(ctx, targetEmployeeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		return managerID != "" && managerID == actorEmployeeID, nil
	case auth.RoleEmployee:
		actorEmployeeID, err := s.Store.EmployeeIDByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		return actorEmployeeID == targetEmployeeID, nil
	default:
		return false, nil
	}
}

// ActorEmployeeID resolves the employee row owned by the actor's user account.
func (s *Scoper) ActorEmployeeID(ctx context.Context, actor auth.UserContext) (string, error) {
	return s.Store.EmployeeIDByUserID(ctx, actor.UserID)
}
