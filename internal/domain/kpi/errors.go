package kpi

import "errors"

var (
	ErrInvalidScaleRange      = errors.New("kpi scale_min must be below scale_max")
	ErrKPINotFound            = errors.New("kpi not found")
	ErrTemplateNotFound       = errors.New("no applicable kpi template")
	ErrItemsRequired          = errors.New("template requires at least one item")
	ErrInvalidItem            = errors.New("template item needs a kpi id and a weight in (0, 100]")
	ErrDuplicateKPIInTemplate = errors.New("duplicate kpi in template")
	ErrWeightSum              = errors.New("template weights must sum to 100")
)
