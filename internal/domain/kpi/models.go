package kpi

import "time"

const (
	TypeCore      = "CORE"
	TypeJob       = "JOB"
	TypeStrategic = "STRATEGIC"
)

type KPI struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	ScaleMin float64 `json:"scaleMin"`
	ScaleMax float64 `json:"scaleMax"`
	Active   bool    `json:"active"`
}

// Template is one immutable weighting scheme. Edits are modeled as
// deactivating the old version and creating a new one.
type Template struct {
	ID                string    `json:"id"`
	AppliesToUnit     *string   `json:"appliesToUnit"`
	AppliesToJobTitle *string   `json:"appliesToJobTitle"`
	Version           int       `json:"version"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"createdAt"`
}

type TemplateItem struct {
	ID     string  `json:"id"`
	KPIID  string  `json:"kpiId"`
	Title  string  `json:"title"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

type TemplateItemInput struct {
	KPIID  string  `json:"kpiId"`
	Weight float64 `json:"weight"`
}

// ResolvedItem is a template item joined with the KPI metadata needed for
// score validation.
type ResolvedItem struct {
	KPIID    string  `json:"kpiId"`
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	Weight   float64 `json:"weight"`
	ScaleMin float64 `json:"scaleMin"`
	ScaleMax float64 `json:"scaleMax"`
}

type Resolved struct {
	Template Template       `json:"template"`
	Items    []ResolvedItem `json:"items"`
}
