package kpi

import (
	"context"

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

func (s *Store) ListActiveKPIs(ctx context.Context) ([]KPI, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, type, scale_min, scale_max, is_active
    FROM kpis
    WHERE is_active = true
    ORDER BY title
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KPI
	for rows.Next() {
		var k KPI
		if err := rows.Scan(&k.ID, &k.Title, &k.Type, &k.ScaleMin, &k.ScaleMax, &k.Active); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (s *Store) CreateKPI(ctx context.Context, k KPI) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO kpis (id, title, type, scale_min, scale_max, is_active)
    VALUES ($1, $2, $3, $4, $5, true)
  `, id, k.Title, k.Type, k.ScaleMin, k.ScaleMax)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateKPI(ctx context.Context, k KPI) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE kpis
    SET title = $1, type = $2, scale_min = $3, scale_max = $4, is_active = $5
    WHERE id = $6
  `, k.Title, k.Type, k.ScaleMin, k.ScaleMax, k.Active, k.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrKPINotFound
	}
	return nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, applies_to_unit, applies_to_job_title, version, is_active, created_at
    FROM kpi_templates
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTemplates(rows)
}

func (s *Store) TemplateItems(ctx context.Context, templateID string) ([]TemplateItem, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ti.id, ti.kpi_id, k.title, k.type, ti.weight
    FROM kpi_template_items ti
    JOIN kpis k ON k.id = ti.kpi_id
    WHERE ti.template_id = $1
    ORDER BY k.title
  `, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TemplateItem
	for rows.Next() {
		var item TemplateItem
		if err := rows.Scan(&item.ID, &item.KPIID, &item.Title, &item.Type, &item.Weight); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// An unknown template and a template with no items both scan zero
	// rows; only the former is an error.
	if len(out) == 0 {
		var exists bool
		if err := s.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM kpi_templates WHERE id = $1)`, templateID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrTemplateNotFound
		}
	}
	return out, nil
}

func (s *Store) CreateTemplateWithItems(ctx context.Context, tpl Template, items []TemplateItemInput) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	templateID := uuid.NewString()
	if _, err := tx.Exec(ctx, `
    INSERT INTO kpi_templates (id, applies_to_unit, applies_to_job_title, version, is_active)
    VALUES ($1, $2, $3, $4, true)
  `, templateID, tpl.AppliesToUnit, tpl.AppliesToJobTitle, tpl.Version); err != nil {
		return "", err
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO kpi_template_items (id, template_id, kpi_id, weight)
      VALUES ($1, $2, $3, $4)
    `, uuid.NewString(), templateID, item.KPIID, item.Weight); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return templateID, nil
}

func (s *Store) DeactivateTemplate(ctx context.Context, templateID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE kpi_templates SET is_active = false WHERE id = $1", templateID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *Store) MatchingTemplates(ctx context.Context, unit, jobTitle string) ([]Template, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, applies_to_unit, applies_to_job_title, version, is_active, created_at
    FROM kpi_templates
    WHERE is_active = true
      AND (applies_to_unit IS NULL OR applies_to_unit = $1)
      AND (applies_to_job_title IS NULL OR applies_to_job_title = $2)
  `, unit, jobTitle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTemplates(rows)
}

// ResolvedItems returns the template's items joined with KPI metadata,
// ordered by KPI title for determinism. KPIs deactivated after template
// creation drop out of the resolved set.
func (s *Store) ResolvedItems(ctx context.Context, templateID string) ([]ResolvedItem, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ti.kpi_id, k.title, k.type, ti.weight, k.scale_min, k.scale_max
    FROM kpi_template_items ti
    JOIN kpis k ON k.id = ti.kpi_id
    WHERE ti.template_id = $1
      AND k.is_active = true
    ORDER BY k.title
  `, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResolvedItem
	for rows.Next() {
		var item ResolvedItem
		if err := rows.Scan(&item.KPIID, &item.Title, &item.Type, &item.Weight, &item.ScaleMin, &item.ScaleMax); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanTemplates(rows pgx.Rows) ([]Template, error) {
	var out []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.AppliesToUnit, &t.AppliesToJobTitle, &t.Version, &t.Active, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
