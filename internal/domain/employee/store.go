package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectColumns = "id, employee_code, full_name, unit, job_title, manager_id, user_id"

func (s *Store) ListAll(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+selectColumns+" FROM employees ORDER BY unit, full_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (s *Store) ListDirectReports(ctx context.Context, managerEmployeeID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+selectColumns+" FROM employees WHERE manager_id = $1 ORDER BY full_name", managerEmployeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (s *Store) ByID(ctx context.Context, employeeID string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, "SELECT "+selectColumns+" FROM employees WHERE id = $1", employeeID).
		Scan(&e.ID, &e.Code, &e.FullName, &e.Unit, &e.JobTitle, &e.ManagerID, &e.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

// ByUserID resolves the employee record linked to a user account, if any.
func (s *Store) ByUserID(ctx context.Context, userID string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, "SELECT "+selectColumns+" FROM employees WHERE user_id = $1", userID).
		Scan(&e.ID, &e.Code, &e.FullName, &e.Unit, &e.JobTitle, &e.ManagerID, &e.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func scanEmployees(rows pgx.Rows) ([]Employee, error) {
	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Code, &e.FullName, &e.Unit, &e.JobTitle, &e.ManagerID, &e.UserID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
