package kpi

import "context"

type StoreAPI interface {
	ListActiveKPIs(ctx context.Context) ([]KPI, error)
	CreateKPI(ctx context.Context, k KPI) (string, error)
	UpdateKPI(ctx context.Context, k KPI) error
	ListTemplates(ctx context.Context) ([]Template, error)
	TemplateItems(ctx context.Context, templateID string) ([]TemplateItem, error)
	CreateTemplateWithItems(ctx context.Context, tpl Template, items []TemplateItemInput) (string, error)
	DeactivateTemplate(ctx context.Context, templateID string) error
	MatchingTemplates(ctx context.Context, unit, jobTitle string) ([]Template, error)
	ResolvedItems(ctx context.Context, templateID string) ([]ResolvedItem, error)
}
