package evaluation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) EmployeeRef(ctx context.Context, employeeID string) (EmployeeRef, error) {
	var ref EmployeeRef
	err := s.DB.QueryRow(ctx, "SELECT id, unit, job_title FROM employees WHERE id = $1", employeeID).
		Scan(&ref.ID, &ref.Unit, &ref.JobTitle)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeRef{}, ErrEmployeeNotFound
	}
	return ref, err
}

func (s *Store) PeriodStatus(ctx context.Context, periodID string) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, "SELECT status FROM evaluation_periods WHERE id = $1", periodID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrPeriodNotFound
	}
	return status, err
}

// InsertEvaluation persists the header and score rows in one transaction.
// The (employee_id, period_id) uniqueness constraint surfaces as
// ErrEvaluationExists.
func (s *Store) InsertEvaluation(ctx context.Context, eval Evaluation, rows []ScoreRow) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	evalID := uuid.NewString()
	_, err = tx.Exec(ctx, `
    INSERT INTO evaluations (id, employee_id, period_id, evaluator_user_id, template_id, final_score)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, evalID, eval.EmployeeID, eval.PeriodID, eval.EvaluatorUserID, eval.TemplateID, eval.FinalScore)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", ErrEvaluationExists
		}
		return "", err
	}

	for _, row := range rows {
		if _, err := tx.Exec(ctx, `
      INSERT INTO evaluation_scores (id, evaluation_id, kpi_id, score, weight, comment)
      VALUES ($1, $2, $3, $4, $5, $6)
    `, uuid.NewString(), evalID, row.KPIID, row.Score, row.Weight, row.Comment); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return evalID, nil
}

func (s *Store) EmployeeProfileByUserID(ctx context.Context, userID string) (EmployeeProfile, error) {
	var profile EmployeeProfile
	err := s.DB.QueryRow(ctx, "SELECT id, full_name, unit, job_title FROM employees WHERE user_id = $1", userID).
		Scan(&profile.ID, &profile.FullName, &profile.Unit, &profile.JobTitle)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeProfile{}, ErrEmployeeLinkNotFound
	}
	return profile, err
}

func (s *Store) EvaluationFor(ctx context.Context, employeeID, periodID string) (Summary, error) {
	var summary Summary
	err := s.DB.QueryRow(ctx, `
    SELECT ev.id, ev.final_score, p.name, ev.created_at
    FROM evaluations ev
    JOIN evaluation_periods p ON p.id = ev.period_id
    WHERE ev.employee_id = $1 AND ev.period_id = $2
  `, employeeID, periodID).Scan(&summary.ID, &summary.FinalScore, &summary.PeriodName, &summary.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Summary{}, ErrEvaluationNotFound
	}
	return summary, err
}

func (s *Store) Breakdown(ctx context.Context, evaluationID string) ([]BreakdownRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT k.title, k.type, es.score, es.weight, es.comment
    FROM evaluation_scores es
    JOIN kpis k ON k.id = es.kpi_id
    WHERE es.evaluation_id = $1
    ORDER BY k.title
  `, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BreakdownRow
	for rows.Next() {
		var row BreakdownRow
		if err := rows.Scan(&row.Title, &row.Type, &row.Score, &row.Weight, &row.Comment); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
