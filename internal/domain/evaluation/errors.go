package evaluation

import "errors"

var (
	ErrForbidden            = errors.New("actor may not evaluate this employee")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeLinkNotFound = errors.New("no employee record linked to this user")
	ErrPeriodNotFound       = errors.New("evaluation period not found")
	ErrPeriodClosed         = errors.New("evaluation period is closed")
	ErrTemplateEmpty        = errors.New("applicable template has no items")
	ErrKPINotInTemplate     = errors.New("submitted kpi is not part of the template")
	ErrDuplicateKPIScore    = errors.New("kpi submitted more than once")
	ErrMissingKPIScore      = errors.New("missing score for template kpi")
	ErrScoreOutOfRange      = errors.New("score outside kpi scale")
	ErrEvaluationExists     = errors.New("evaluation already exists for this employee and period")
	ErrEvaluationNotFound   = errors.New("evaluation not found")
)
