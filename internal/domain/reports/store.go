package reports

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) PeriodName(ctx context.Context, periodID string) (string, error) {
	var name string
	err := s.DB.QueryRow(ctx, `SELECT name FROM evaluation_periods WHERE id = $1`, periodID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrPeriodNotFound
	}
	return name, err
}

// PreviousPeriodID locates the period created immediately before the given
// one, regardless of type.
func (s *Store) PreviousPeriodID(ctx context.Context, periodID string) (string, error) {
	var prev string
	err := s.DB.QueryRow(ctx, `
    SELECT p.id
    FROM evaluation_periods p
    WHERE p.created_at < (SELECT created_at FROM evaluation_periods WHERE id = $1)
    ORDER BY p.created_at DESC
    LIMIT 1
  `, periodID).Scan(&prev)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrPreviousPeriodNotFound
	}
	return prev, err
}

func (s *Store) TopPerformers(ctx context.Context, periodID string, limit int) ([]TopPerformer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.full_name, e.unit, e.job_title, ev.final_score
    FROM evaluations ev
    JOIN employees e ON e.id = ev.employee_id
    WHERE ev.period_id = $1
    ORDER BY ev.final_score DESC, e.full_name ASC
    LIMIT $2
  `, periodID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopPerformer
	for rows.Next() {
		var p TopPerformer
		if err := rows.Scan(&p.EmployeeID, &p.FullName, &p.Unit, &p.JobTitle, &p.FinalScore); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) HeatmapCells(ctx context.Context, periodID string) ([]HeatmapCell, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.full_name, k.title, sc.score
    FROM evaluation_scores sc
    JOIN evaluations ev ON ev.id = sc.evaluation_id
    JOIN employees e ON e.id = ev.employee_id
    JOIN kpis k ON k.id = sc.kpi_id
    WHERE ev.period_id = $1
    ORDER BY e.full_name ASC, k.title ASC
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HeatmapCell
	for rows.Next() {
		var c HeatmapCell
		if err := rows.Scan(&c.EmployeeID, &c.EmployeeName, &c.KPITitle, &c.Score); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) UnitAverages(ctx context.Context, periodID string) ([]UnitAverage, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.unit, AVG(ev.final_score), COUNT(*)
    FROM evaluations ev
    JOIN employees e ON e.id = ev.employee_id
    WHERE ev.period_id = $1
    GROUP BY e.unit
    ORDER BY e.unit ASC
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UnitAverage
	for rows.Next() {
		var u UnitAverage
		if err := rows.Scan(&u.Unit, &u.Average, &u.Count); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UnitPeriodCells returns per-unit averages for every period that has
// evaluations, ordered chronologically so the pivot keeps period columns
// in time order.
func (s *Store) UnitPeriodCells(ctx context.Context) ([]UnitPeriodCell, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.unit, p.id, p.name, AVG(ev.final_score)
    FROM evaluations ev
    JOIN employees e ON e.id = ev.employee_id
    JOIN evaluation_periods p ON p.id = ev.period_id
    GROUP BY e.unit, p.id, p.name, p.created_at
    ORDER BY p.created_at ASC, e.unit ASC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UnitPeriodCell
	for rows.Next() {
		var c UnitPeriodCell
		if err := rows.Scan(&c.Unit, &c.PeriodID, &c.PeriodName, &c.Average); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) RiskList(ctx context.Context, periodID string, threshold float64) ([]RiskRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.full_name, e.unit, e.job_title, ev.final_score
    FROM evaluations ev
    JOIN employees e ON e.id = ev.employee_id
    WHERE ev.period_id = $1 AND ev.final_score < $2
    ORDER BY ev.final_score ASC, e.full_name ASC
  `, periodID, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RiskRow
	for rows.Next() {
		var r RiskRow
		if err := rows.Scan(&r.EmployeeID, &r.FullName, &r.Unit, &r.JobTitle, &r.FinalScore); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UnitTrend(ctx context.Context, unit string) ([]TrendPoint, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.name, AVG(ev.final_score), COUNT(*)
    FROM evaluations ev
    JOIN employees e ON e.id = ev.employee_id
    JOIN evaluation_periods p ON p.id = ev.period_id
    WHERE e.unit = $1
    GROUP BY p.id, p.name, p.created_at
    ORDER BY p.created_at ASC
  `, unit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrendPoint
	for rows.Next() {
		var tp TrendPoint
		if err := rows.Scan(&tp.PeriodID, &tp.PeriodName, &tp.Average, &tp.Count); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

func (s *Store) Units(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT DISTINCT unit FROM employees ORDER BY unit ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
