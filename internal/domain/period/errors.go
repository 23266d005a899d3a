package period

import "errors"

var ErrPeriodNotFound = errors.New("evaluation period not found")
