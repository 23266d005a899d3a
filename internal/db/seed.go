package db

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfeval/internal/config"
	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/evaluation"
	"perfeval/internal/domain/kpi"
	"perfeval/internal/domain/objection"
	"perfeval/internal/domain/period"
)

// Seed loads a small demo org: one CEO, one HR user, two managers with one
// report each, a Sales and a Support template, three quarterly periods, a
// pair of finished evaluations and one open objection. It is a no-op when
// users already exist.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if !cfg.RunSeed {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.SeedUserPassword
	if password == "" {
		password = "password123"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	type seedUser struct {
		username string
		role     string
	}
	users := []seedUser{
		{"ceo", auth.RoleCEO},
		{"hr", auth.RoleHR},
		{"mgr", auth.RoleManager},
		{"emp", auth.RoleEmployee},
		{"mgr2", auth.RoleManager},
		{"emp2", auth.RoleEmployee},
	}
	userIDs := make(map[string]string, len(users))
	for _, u := range users {
		id := uuid.NewString()
		userIDs[u.username] = id
		if _, err := pool.Exec(ctx, `
      INSERT INTO users (id, username, password_hash, role)
      VALUES ($1, $2, $3, $4)
    `, id, u.username, hash, u.role); err != nil {
			return err
		}
	}

	type seedEmployee struct {
		username string
		code     string
		fullName string
		unit     string
		jobTitle string
		manager  string
	}
	employees := []seedEmployee{
		{"ceo", "E001", "Dana Chief", "Executive", "Chief Executive", ""},
		{"mgr", "E002", "Morgan Lead", "Sales", "Sales Manager", ""},
		{"emp", "E003", "Evan Seller", "Sales", "Account Executive", "mgr"},
		{"mgr2", "E004", "Sam Helper", "Support", "Support Manager", ""},
		{"emp2", "E005", "Riley Agent", "Support", "Support Agent", "mgr2"},
	}
	employeeIDs := make(map[string]string, len(employees))
	for _, e := range employees {
		employeeIDs[e.username] = uuid.NewString()
	}
	for _, e := range employees {
		var managerID any
		if e.manager != "" {
			managerID = employeeIDs[e.manager]
		}
		if _, err := pool.Exec(ctx, `
      INSERT INTO employees (id, employee_code, full_name, unit, job_title, manager_id, user_id)
      VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, employeeIDs[e.username], e.code, e.fullName, e.unit, e.jobTitle, managerID, userIDs[e.username]); err != nil {
			return err
		}
	}

	type seedKPI struct {
		title    string
		kpiType  string
		scaleMin float64
		scaleMax float64
	}
	kpis := []seedKPI{
		{"Quality of Work", kpi.TypeCore, 0, 100},
		{"Delivery Timeliness", kpi.TypeJob, 0, 100},
		{"Strategic Initiative", kpi.TypeStrategic, 0, 100},
	}
	kpiIDs := make([]string, 0, len(kpis))
	for _, k := range kpis {
		id := uuid.NewString()
		kpiIDs = append(kpiIDs, id)
		if _, err := pool.Exec(ctx, `
      INSERT INTO kpis (id, title, type, scale_min, scale_max, is_active)
      VALUES ($1, $2, $3, $4, $5, true)
    `, id, k.title, k.kpiType, k.scaleMin, k.scaleMax); err != nil {
			return err
		}
	}

	weights := []float64{30, 30, 40}
	templateIDs := make(map[string]string, 2)
	for _, unit := range []string{"Sales", "Support"} {
		templateID := uuid.NewString()
		templateIDs[unit] = templateID
		if _, err := pool.Exec(ctx, `
      INSERT INTO kpi_templates (id, applies_to_unit, applies_to_job_title, version, is_active)
      VALUES ($1, $2, NULL, 1, true)
    `, templateID, unit); err != nil {
			return err
		}
		for i, kpiID := range kpiIDs {
			if _, err := pool.Exec(ctx, `
        INSERT INTO kpi_template_items (id, template_id, kpi_id, weight)
        VALUES ($1, $2, $3, $4)
      `, uuid.NewString(), templateID, kpiID, weights[i]); err != nil {
				return err
			}
		}
	}

	type seedPeriod struct {
		name   string
		start  string
		end    string
		status string
	}
	periods := []seedPeriod{
		{"2025 Q1", "2025-01-01", "2025-03-31", period.StatusClosed},
		{"2025 Q2", "2025-04-01", "2025-06-30", period.StatusOpen},
		{"2025 Q3", "2025-07-01", "2025-09-30", period.StatusOpen},
	}
	periodIDs := make(map[string]string, len(periods))
	for _, p := range periods {
		id := uuid.NewString()
		periodIDs[p.name] = id
		start, _ := time.Parse("2006-01-02", p.start)
		end, _ := time.Parse("2006-01-02", p.end)
		if _, err := pool.Exec(ctx, `
      INSERT INTO evaluation_periods (id, name, period_type, start_date, end_date, status, created_at)
      VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, id, p.name, period.TypeQuarterly, start, end, p.status, start); err != nil {
			return err
		}
	}

	type seedEval struct {
		employee  string
		evaluator string
		unit      string
		scores    []float64
	}
	evals := []seedEval{
		{"emp", "mgr", "Sales", []float64{70, 60, 75}},
		{"emp2", "mgr2", "Support", []float64{85, 80, 90}},
	}
	var objectionEvalID string
	for _, ev := range evals {
		items := make([]evaluation.ScoredItem, len(ev.scores))
		for i, score := range ev.scores {
			items[i] = evaluation.ScoredItem{KPIID: kpiIDs[i], Score: score, Weight: weights[i]}
		}
		finalScore := evaluation.WeightedScore(items)

		evalID := uuid.NewString()
		if _, err := pool.Exec(ctx, `
      INSERT INTO evaluations (id, employee_id, period_id, evaluator_user_id, template_id, final_score)
      VALUES ($1, $2, $3, $4, $5, $6)
    `, evalID, employeeIDs[ev.employee], periodIDs["2025 Q1"], userIDs[ev.evaluator], templateIDs[ev.unit], finalScore); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := pool.Exec(ctx, `
        INSERT INTO evaluation_scores (id, evaluation_id, kpi_id, score, weight, comment)
        VALUES ($1, $2, $3, $4, $5, NULL)
      `, uuid.NewString(), evalID, item.KPIID, item.Score, item.Weight); err != nil {
				return err
			}
		}
		if ev.employee == "emp" {
			objectionEvalID = evalID
		}
	}

	if _, err := pool.Exec(ctx, `
    INSERT INTO objections (id, evaluation_id, employee_id, message, status)
    VALUES ($1, $2, $3, $4, $5)
  `, uuid.NewString(), objectionEvalID, employeeIDs["emp"], "The timeliness score does not reflect the deals closed in March.", objection.StatusOpen); err != nil {
		return err
	}

	log.Println("seeded demo data")
	return nil
}
