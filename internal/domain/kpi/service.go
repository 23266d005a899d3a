package kpi

import "context"

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) ListKPIs(ctx context.Context) ([]KPI, error) {
	return s.store.ListActiveKPIs(ctx)
}

func (s *Service) CreateKPI(ctx context.Context, k KPI) (string, error) {
	if err := ValidateScale(k.ScaleMin, k.ScaleMax); err != nil {
		return "", err
	}
	return s.store.CreateKPI(ctx, k)
}

func (s *Service) UpdateKPI(ctx context.Context, k KPI) error {
	if err := ValidateScale(k.ScaleMin, k.ScaleMax); err != nil {
		return err
	}
	return s.store.UpdateKPI(ctx, k)
}

func (s *Service) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.store.ListTemplates(ctx)
}

func (s *Service) TemplateItems(ctx context.Context, templateID string) ([]TemplateItem, error) {
	return s.store.TemplateItems(ctx, templateID)
}

func (s *Service) CreateTemplate(ctx context.Context, appliesToUnit, appliesToJobTitle *string, version int, items []TemplateItemInput) (string, error) {
	if err := ValidateTemplateItems(items); err != nil {
		return "", err
	}
	if version <= 0 {
		version = 1
	}
	tpl := Template{
		AppliesToUnit:     appliesToUnit,
		AppliesToJobTitle: appliesToJobTitle,
		Version:           version,
	}
	return s.store.CreateTemplateWithItems(ctx, tpl, items)
}

func (s *Service) DeactivateTemplate(ctx context.Context, templateID string) error {
	return s.store.DeactivateTemplate(ctx, templateID)
}

// Resolve selects the single applicable template for an employee's unit and
// job title together with its weighted items.
func (s *Service) Resolve(ctx context.Context, unit, jobTitle string) (Resolved, error) {
	candidates, err := s.store.MatchingTemplates(ctx, unit, jobTitle)
	if err != nil {
		return Resolved{}, err
	}
	winner := MostSpecific(candidates)
	if winner == nil {
		return Resolved{}, ErrTemplateNotFound
	}
	items, err := s.store.ResolvedItems(ctx, winner.ID)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Template: *winner, Items: items}, nil
}
