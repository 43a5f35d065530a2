package domain

import (
	"encoding/json"
	"time"
)

const (
	ReportTypeIndicator = "indicator"
	ReportTypeProject   = "project"
	ReportTypeCustom    = "custom"
)

// Report is a persisted report definition with its single cached
// snapshot. Generate fully replaces CachedRows and LastGenerated; no
// snapshot history is kept and concurrent regenerations race with
// last-write-wins semantics.
type Report struct {
	ID          int64
	Name        string
	Description string
	ReportType  string

	Parameters ReportParameters

	CachedRows    []Row
	LastGenerated *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// ReportParameters are the stored query filters for a report. Raw
// parameter payloads accept both "*_id" and bare keys; the id-suffixed
// spelling wins when both are present.
type ReportParameters struct {
	ProjectID      int64
	OrganizationID int64
	IndicatorIDs   []int64
	DateFrom       string
	DateTo         string
	Format         string
}

// Row is one snapshot row. Columns carries the header order so exports
// stay stable across the JSON round trip.
type Row struct {
	Columns []string
	Values  map[string]any
}

func (r Row) Get(column string) any {
	return r.Values[column]
}

func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values)
}

// ScheduledReport is a recurring report definition. NextRun is derived
// from Frequency at creation when the caller does not supply one.
type ScheduledReport struct {
	ID         int64
	ReportName string
	ReportType string
	Frequency  string
	Recipients []string
	IsActive   bool
	NextRun    time.Time
	LastRun    *time.Time

	CreatedAt time.Time
	CreatedBy string
}

const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
)
