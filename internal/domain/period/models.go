package period

import "time"

const (
	TypeMonthly   = "MONTHLY"
	TypeQuarterly = "QUARTERLY"
	TypeYearly    = "YEARLY"

	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

type Period struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PeriodType string    `json:"periodType"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Status     string    `json:"status"`
}
