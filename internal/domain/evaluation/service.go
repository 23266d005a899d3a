package evaluation

import (
	"context"

	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/kpi"
	"perfeval/internal/domain/period"
)

// Resolver yields the applicable weighted template for an employee's
// organizational attributes.
type Resolver interface {
	Resolve(ctx context.Context, unit, jobTitle string) (kpi.Resolved, error)
}

// AccessPolicy answers whether the actor may act on the target employee.
type AccessPolicy interface {
	CanActOn(ctx context.Context, actor auth.UserContext, targetEmployeeID string) (bool, error)
}

type Service struct {
	store    StoreAPI
	resolver Resolver
	access   AccessPolicy
}

func NewService(store StoreAPI, resolver Resolver, access AccessPolicy) *Service {
	return &Service{store: store, resolver: resolver, access: access}
}

// Create runs the full evaluation creation sequence: access check, employee
// and period existence, open-period guard, template resolution, score
// validation, weighted scoring and one atomic insert. Every rejection is an
// expected outcome carried as a typed error.
func (s *Service) Create(ctx context.Context, actor auth.UserContext, employeeID, periodID string, scores []SubmittedScore) (CreateResult, error) {
	allowed, err := s.access.CanActOn(ctx, actor, employeeID)
	if err != nil {
		return CreateResult{}, err
	}
	if !allowed {
		return CreateResult{}, ErrForbidden
	}

	emp, err := s.store.EmployeeRef(ctx, employeeID)
	if err != nil {
		return CreateResult{}, err
	}

	status, err := s.store.PeriodStatus(ctx, periodID)
	if err != nil {
		return CreateResult{}, err
	}
	if status != period.StatusOpen {
		return CreateResult{}, ErrPeriodClosed
	}

	resolved, err := s.resolver.Resolve(ctx, emp.Unit, emp.JobTitle)
	if err != nil {
		return CreateResult{}, err
	}
	if len(resolved.Items) == 0 {
		return CreateResult{}, ErrTemplateEmpty
	}

	items, err := ValidateScores(resolved.Items, scores)
	if err != nil {
		return CreateResult{}, err
	}

	finalScore := WeightedScore(items)

	rows := make([]ScoreRow, 0, len(items))
	for _, item := range items {
		var comment *string
		if item.Comment != "" {
			c := item.Comment
			comment = &c
		}
		rows = append(rows, ScoreRow{
			KPIID:   item.KPIID,
			Score:   item.Score,
			Weight:  item.Weight,
			Comment: comment,
		})
	}

	evalID, err := s.store.InsertEvaluation(ctx, Evaluation{
		EmployeeID:      employeeID,
		PeriodID:        periodID,
		EvaluatorUserID: actor.UserID,
		TemplateID:      resolved.Template.ID,
		FinalScore:      finalScore,
	}, rows)
	if err != nil {
		return CreateResult{}, err
	}

	return CreateResult{EvaluationID: evalID, TemplateID: resolved.Template.ID, FinalScore: finalScore}, nil
}

// MyResult returns the caller's own evaluation and per-KPI breakdown for a
// period.
func (s *Service) MyResult(ctx context.Context, actor auth.UserContext, periodID string) (Result, error) {
	profile, err := s.store.EmployeeProfileByUserID(ctx, actor.UserID)
	if err != nil {
		return Result{}, err
	}

	summary, err := s.store.EvaluationFor(ctx, profile.ID, periodID)
	if err != nil {
		return Result{}, err
	}

	breakdown, err := s.store.Breakdown(ctx, summary.ID)
	if err != nil {
		return Result{}, err
	}

	return Result{Employee: profile, Evaluation: summary, Breakdown: breakdown}, nil
}
