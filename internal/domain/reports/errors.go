package reports

import "errors"

var (
	ErrPeriodNotFound         = errors.New("period not found")
	ErrPreviousPeriodNotFound = errors.New("no previous period to compare against")
)
