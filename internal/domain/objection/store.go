package objection

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) EmployeeIDByUserID(ctx context.Context, userID string) (string, error) {
	var employeeID string
	err := s.DB.QueryRow(ctx, "SELECT id FROM employees WHERE user_id = $1", userID).Scan(&employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrEmployeeLinkNotFound
	}
	return employeeID, err
}

func (s *Store) EvaluationOwnedBy(ctx context.Context, evaluationID, employeeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM evaluations WHERE id = $1 AND employee_id = $2", evaluationID, employeeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateObjection(ctx context.Context, evaluationID, employeeID, message string) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO objections (id, evaluation_id, employee_id, message, status)
    VALUES ($1, $2, $3, $4, $5)
  `, id, evaluationID, employeeID, message, StatusOpen)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetObjection(ctx context.Context, objectionID string) (Objection, error) {
	var obj Objection
	err := s.DB.QueryRow(ctx, `
    SELECT id, evaluation_id, employee_id, message, status, response_message,
           resolver_user_id, reviewed_at, resolved_at, created_at
    FROM objections
    WHERE id = $1
  `, objectionID).Scan(&obj.ID, &obj.EvaluationID, &obj.EmployeeID, &obj.Message, &obj.Status,
		&obj.ResponseMessage, &obj.ResolverUserID, &obj.ReviewedAt, &obj.ResolvedAt, &obj.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Objection{}, ErrObjectionNotFound
	}
	return obj, err
}

// SaveTransition persists the mutable workflow fields of an objection after
// a review or resolve transition was applied.
func (s *Store) SaveTransition(ctx context.Context, obj Objection) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE objections
    SET status = $1, response_message = $2, resolver_user_id = $3, reviewed_at = $4, resolved_at = $5
    WHERE id = $6
  `, obj.Status, obj.ResponseMessage, obj.ResolverUserID, obj.ReviewedAt, obj.ResolvedAt, obj.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrObjectionNotFound
	}
	return nil
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID, evaluationID string) ([]MineItem, error) {
	query := `
    SELECT o.id, o.evaluation_id, o.message, o.status, o.response_message,
           p.name, o.created_at, o.reviewed_at, o.resolved_at
    FROM objections o
    JOIN evaluations ev ON ev.id = o.evaluation_id
    JOIN evaluation_periods p ON p.id = ev.period_id
    WHERE o.employee_id = $1
  `
	args := []any{employeeID}
	if evaluationID != "" {
		query += " AND o.evaluation_id = $2"
		args = append(args, evaluationID)
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MineItem
	for rows.Next() {
		var item MineItem
		if err := rows.Scan(&item.ID, &item.EvaluationID, &item.Message, &item.Status, &item.ResponseMessage,
			&item.PeriodName, &item.CreatedAt, &item.ReviewedAt, &item.ResolvedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

const reviewListSelect = `
    SELECT o.id, o.evaluation_id, o.status, o.message, o.response_message,
           e.full_name, e.unit, e.job_title, p.name,
           o.created_at, o.reviewed_at, o.resolved_at
    FROM objections o
    JOIN employees e ON e.id = o.employee_id
    JOIN evaluations ev ON ev.id = o.evaluation_id
    JOIN evaluation_periods p ON p.id = ev.period_id
`

func (s *Store) ListForManager(ctx context.Context, managerEmployeeID, status string) ([]ReviewItem, error) {
	query := reviewListSelect + " WHERE e.manager_id = $1"
	args := []any{managerEmployeeID}
	if status != "" {
		query += fmt.Sprintf(" AND o.status = $%d", len(args)+1)
		args = append(args, status)
	}
	query += " ORDER BY o.created_at DESC"
	return s.queryReviewItems(ctx, query, args)
}

func (s *Store) ListAll(ctx context.Context, status string) ([]ReviewItem, error) {
	query := reviewListSelect
	var args []any
	if status != "" {
		query += " WHERE o.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY o.created_at DESC"
	return s.queryReviewItems(ctx, query, args)
}

func (s *Store) queryReviewItems(ctx context.Context, query string, args []any) ([]ReviewItem, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReviewItem
	for rows.Next() {
		var item ReviewItem
		if err := rows.Scan(&item.ID, &item.EvaluationID, &item.Status, &item.Message, &item.ResponseMessage,
			&item.FullName, &item.Unit, &item.JobTitle, &item.PeriodName,
			&item.CreatedAt, &item.ReviewedAt, &item.ResolvedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) ListExport(ctx context.Context) ([]ExportRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT o.id, o.status, o.created_at, p.name,
           e.employee_code, e.full_name, e.unit, e.job_title,
           ev.id, o.message, o.response_message
    FROM objections o
    JOIN employees e ON e.id = o.employee_id
    JOIN evaluations ev ON ev.id = o.evaluation_id
    JOIN evaluation_periods p ON p.id = ev.period_id
    ORDER BY o.created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var row ExportRow
		if err := rows.Scan(&row.ID, &row.Status, &row.CreatedAt, &row.PeriodName,
			&row.EmployeeCode, &row.FullName, &row.Unit, &row.JobTitle,
			&row.EvaluationID, &row.Message, &row.ResponseMessage); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
