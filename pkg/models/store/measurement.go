package store

import (
	"encoding/json"
	"time"
)

// MeasurementRecord is an aggregate row joined with the names of its
// indicator, project and organization. Value carries the raw JSON
// payload as submitted; shape normalization happens in the domain.
type MeasurementRecord struct {
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

	Value json.RawMessage
	Notes string

	CreatedAt time.Time
	CreatedBy string
}

// MeasurementFilter combines the indexed lookups the store supports.
// Zero values mean "not filtered"; None short-circuits to an empty
// result set and exists so access policies can deny without a query.
type MeasurementFilter struct {
	IndicatorIDs    []int64
	ProjectID       int64
	OrganizationID  int64
	PeriodStartFrom *time.Time
	PeriodEndTo     *time.Time
	None            bool
}
