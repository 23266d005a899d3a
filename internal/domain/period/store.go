package period

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListPeriods(ctx context.Context) ([]Period, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, period_type, start_date, end_date, status
    FROM evaluation_periods
    ORDER BY start_date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Period
	for rows.Next() {
		var p Period
		if err := rows.Scan(&p.ID, &p.Name, &p.PeriodType, &p.StartDate, &p.EndDate, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) CreatePeriod(ctx context.Context, name, periodType string, startDate, endDate time.Time) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO evaluation_periods (id, name, period_type, start_date, end_date, status)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, id, name, periodType, startDate, endDate, StatusOpen)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ClosePeriod is the one-way OPEN -> CLOSED transition. Closing an already
// closed period is a no-op.
func (s *Store) ClosePeriod(ctx context.Context, periodID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE evaluation_periods SET status = $1 WHERE id = $2", StatusClosed, periodID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPeriodNotFound
	}
	return nil
}
