package domain

import "time"

// Measurement is one submitted aggregate: a value reported for an
// indicator, within a project, by an organization, over an inclusive
// period. At most one measurement exists per (indicator, project,
// organization, period_start, period_end); the store enforces that.
type Measurement struct {
	ID             int64
	IndicatorID    int64
	ProjectID      int64
	OrganizationID int64

	IndicatorName    string
	IndicatorCode    string
	ProjectName      string
	OrganizationName string

	PeriodStart time.Time
	PeriodEnd   time.Time

	Value Value
	Notes string

	CreatedAt time.Time
	CreatedBy string
}
