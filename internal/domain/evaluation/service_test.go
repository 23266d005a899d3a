package evaluation

import (
	"context"
	"errors"
	"testing"

	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/kpi"
	"perfeval/internal/domain/period"
)

type fakeStore struct {
	employees    map[string]EmployeeRef
	periods      map[string]string
	insertErr    error
	inserted     *Evaluation
	insertedRows []ScoreRow
	existing     map[string]bool // employeeID+periodID already evaluated
}

func (f *fakeStore) EmployeeRef(_ context.Context, employeeID string) (EmployeeRef, error) {
	ref, ok := f.employees[employeeID]
	if !ok {
		return EmployeeRef{}, ErrEmployeeNotFound
	}
	return ref, nil
}

func (f *fakeStore) PeriodStatus(_ context.Context, periodID string) (string, error) {
	status, ok := f.periods[periodID]
	if !ok {
		return "", ErrPeriodNotFound
	}
	return status, nil
}

func (f *fakeStore) InsertEvaluation(_ context.Context, eval Evaluation, rows []ScoreRow) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	if f.existing[eval.EmployeeID+"/"+eval.PeriodID] {
		return "", ErrEvaluationExists
	}
	copyEval := eval
	f.inserted = &copyEval
	f.insertedRows = rows
	return "eval-1", nil
}

func (f *fakeStore) EmployeeProfileByUserID(_ context.Context, _ string) (EmployeeProfile, error) {
	return EmployeeProfile{}, ErrEmployeeLinkNotFound
}

func (f *fakeStore) EvaluationFor(_ context.Context, _, _ string) (Summary, error) {
	return Summary{}, ErrEvaluationNotFound
}

func (f *fakeStore) Breakdown(_ context.Context, _ string) ([]BreakdownRow, error) {
	return nil, nil
}

type fakeResolver struct {
	resolved kpi.Resolved
	err      error
}

func (f *fakeResolver) Resolve(_ context.Context, _, _ string) (kpi.Resolved, error) {
	return f.resolved, f.err
}

type fakeAccess struct {
	allowed map[string]bool
}

func (f *fakeAccess) CanActOn(_ context.Context, actor auth.UserContext, targetEmployeeID string) (bool, error) {
	if auth.IsElevated(actor.Role) {
		return true, nil
	}
	return f.allowed[actor.UserID+"/"+targetEmployeeID], nil
}

func validResolved() kpi.Resolved {
	return kpi.Resolved{
		Template: kpi.Template{ID: "tpl-1", Version: 1, Active: true},
		Items: []kpi.ResolvedItem{
			{KPIID: "k1", Title: "Discipline", Weight: 30, ScaleMin: 0, ScaleMax: 100},
			{KPIID: "k2", Title: "Sales", Weight: 40, ScaleMin: 0, ScaleMax: 100},
			{KPIID: "k3", Title: "Teamwork", Weight: 30, ScaleMin: 0, ScaleMax: 100},
		},
	}
}

func validScores() []SubmittedScore {
	return []SubmittedScore{
		{KPIID: "k1", Score: 60, Comment: "needs punctuality"},
		{KPIID: "k2", Score: 75},
		{KPIID: "k3", Score: 70},
	}
}

func newFixture() (*Service, *fakeStore) {
	store := &fakeStore{
		employees: map[string]EmployeeRef{
			"emp-1": {ID: "emp-1", Unit: "Sales", JobTitle: "Sales Specialist"},
		},
		periods: map[string]string{
			"p-open":   period.StatusOpen,
			"p-closed": period.StatusClosed,
		},
		existing: map[string]bool{},
	}
	svc := NewService(store, &fakeResolver{resolved: validResolved()}, &fakeAccess{
		allowed: map[string]bool{"user-mgr/emp-1": true},
	})
	return svc, store
}

func manager() auth.UserContext {
	return auth.UserContext{UserID: "user-mgr", Role: auth.RoleManager}
}

func TestCreateComputesWeightedFinalScore(t *testing.T) {
	svc, store := newFixture()

	result, err := svc.Create(context.Background(), manager(), "emp-1", "p-open", validScores())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FinalScore != 72.0 {
		t.Fatalf("expected final score 72.0, got %v", result.FinalScore)
	}
	if result.TemplateID != "tpl-1" {
		t.Fatalf("expected template tpl-1, got %s", result.TemplateID)
	}
	if store.inserted == nil || store.inserted.EvaluatorUserID != "user-mgr" {
		t.Fatalf("expected evaluator snapshot, got %+v", store.inserted)
	}
	if len(store.insertedRows) != 3 {
		t.Fatalf("expected 3 score rows, got %d", len(store.insertedRows))
	}
	// Weights persist from the template snapshot.
	for _, row := range store.insertedRows {
		if row.Weight != 30 && row.Weight != 40 {
			t.Fatalf("unexpected persisted weight: %+v", row)
		}
	}
	if store.insertedRows[0].Comment == nil || *store.insertedRows[0].Comment != "needs punctuality" {
		t.Fatalf("expected comment persisted, got %+v", store.insertedRows[0])
	}
}

func TestStoredScoresSurviveTemplateReplacement(t *testing.T) {
	store := &fakeStore{
		employees: map[string]EmployeeRef{
			"emp-1": {ID: "emp-1", Unit: "Sales", JobTitle: "Sales Specialist"},
		},
		periods:  map[string]string{"p-open": period.StatusOpen},
		existing: map[string]bool{},
	}
	resolver := &fakeResolver{resolved: validResolved()}
	svc := NewService(store, resolver, &fakeAccess{
		allowed: map[string]bool{"user-mgr/emp-1": true},
	})

	result, err := svc.Create(context.Background(), manager(), "emp-1", "p-open", validScores())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Deactivate the old template and swap in one with different items
	// and weights, as a later template revision would.
	resolver.resolved = kpi.Resolved{
		Template: kpi.Template{ID: "tpl-2", Version: 2, Active: true},
		Items: []kpi.ResolvedItem{
			{KPIID: "k1", Title: "Discipline", Weight: 50, ScaleMin: 0, ScaleMax: 100},
			{KPIID: "k2", Title: "Sales", Weight: 50, ScaleMin: 0, ScaleMax: 100},
		},
	}

	if store.inserted.TemplateID != "tpl-1" {
		t.Fatalf("expected stored template tpl-1, got %s", store.inserted.TemplateID)
	}
	if store.inserted.FinalScore != result.FinalScore {
		t.Fatalf("stored final score drifted: %v vs %v", store.inserted.FinalScore, result.FinalScore)
	}
	if len(store.insertedRows) != 3 {
		t.Fatalf("expected 3 stored rows, got %d", len(store.insertedRows))
	}
	weights := map[string]float64{}
	for _, row := range store.insertedRows {
		weights[row.KPIID] = row.Weight
	}
	if weights["k1"] != 30 || weights["k2"] != 40 || weights["k3"] != 30 {
		t.Fatalf("stored weights drifted from the creation-time snapshot: %v", weights)
	}
}

func TestCreateForbiddenForNonDirectReport(t *testing.T) {
	svc, store := newFixture()
	store.employees["emp-2"] = EmployeeRef{ID: "emp-2", Unit: "Support", JobTitle: "Support Specialist"}

	_, err := svc.Create(context.Background(), manager(), "emp-2", "p-open", validScores())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateElevatedRolesBypassManagerScoping(t *testing.T) {
	svc, store := newFixture()
	store.employees["emp-2"] = EmployeeRef{ID: "emp-2", Unit: "Sales", JobTitle: "Sales Specialist"}

	actor := auth.UserContext{UserID: "user-hr", Role: auth.RoleHR}
	if _, err := svc.Create(context.Background(), actor, "emp-2", "p-open", validScores()); err != nil {
		t.Fatalf("expected HR to evaluate any employee, got %v", err)
	}
}

func TestCreateEmployeeNotFound(t *testing.T) {
	svc, _ := newFixture()
	actor := auth.UserContext{UserID: "user-hr", Role: auth.RoleHR}
	_, err := svc.Create(context.Background(), actor, "emp-missing", "p-open", validScores())
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestCreatePeriodNotFound(t *testing.T) {
	svc, _ := newFixture()
	_, err := svc.Create(context.Background(), manager(), "emp-1", "p-missing", validScores())
	if !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound, got %v", err)
	}
}

func TestCreateRejectsClosedPeriod(t *testing.T) {
	svc, _ := newFixture()
	_, err := svc.Create(context.Background(), manager(), "emp-1", "p-closed", validScores())
	if !errors.Is(err, ErrPeriodClosed) {
		t.Fatalf("expected ErrPeriodClosed, got %v", err)
	}
}

func TestCreateTemplateNotFound(t *testing.T) {
	_, store := newFixture()
	svc := NewService(store, &fakeResolver{err: kpi.ErrTemplateNotFound}, &fakeAccess{
		allowed: map[string]bool{"user-mgr/emp-1": true},
	})
	_, err := svc.Create(context.Background(), manager(), "emp-1", "p-open", validScores())
	if !errors.Is(err, kpi.ErrTemplateNotFound) {
		t.Fatalf("expected kpi.ErrTemplateNotFound, got %v", err)
	}
}

func TestCreateTemplateEmpty(t *testing.T) {
	_, store := newFixture()
	resolved := kpi.Resolved{Template: kpi.Template{ID: "tpl-empty"}}
	svc := NewService(store, &fakeResolver{resolved: resolved}, &fakeAccess{
		allowed: map[string]bool{"user-mgr/emp-1": true},
	})
	_, err := svc.Create(context.Background(), manager(), "emp-1", "p-open", validScores())
	if !errors.Is(err, ErrTemplateEmpty) {
		t.Fatalf("expected ErrTemplateEmpty, got %v", err)
	}
}

func TestCreateValidationErrorsPassThrough(t *testing.T) {
	svc, _ := newFixture()
	scores := validScores()[:2]
	_, err := svc.Create(context.Background(), manager(), "emp-1", "p-open", scores)
	if !errors.Is(err, ErrMissingKPIScore) {
		t.Fatalf("expected ErrMissingKPIScore, got %v", err)
	}
}

func TestCreateSurfacesUniquenessConflict(t *testing.T) {
	svc, store := newFixture()
	store.existing["emp-1/p-open"] = true

	_, err := svc.Create(context.Background(), manager(), "emp-1", "p-open", validScores())
	if !errors.Is(err, ErrEvaluationExists) {
		t.Fatalf("expected ErrEvaluationExists, got %v", err)
	}
}

func TestMyResultRequiresEmployeeLink(t *testing.T) {
	svc, _ := newFixture()
	actor := auth.UserContext{UserID: "user-unlinked", Role: auth.RoleEmployee}
	_, err := svc.MyResult(context.Background(), actor, "p-open")
	if !errors.Is(err, ErrEmployeeLinkNotFound) {
		t.Fatalf("expected ErrEmployeeLinkNotFound, got %v", err)
	}
}
