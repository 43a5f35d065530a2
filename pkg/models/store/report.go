package store

import (
	"encoding/json"
	"time"
)

// ReportRecord is a reports row. Parameters and CachedData stay raw at
// this layer; the report service owns both schemas.
type ReportRecord struct {
	ID            int64
	Name          string
	Description   string
	ReportType    string
	Parameters    json.RawMessage
	CachedData    json.RawMessage
	LastGenerated *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
}

type ScheduledReportRecord struct {
	ID         int64
	ReportName string
	ReportType string
	Frequency  string
	Recipients json.RawMessage
	IsActive   bool
	NextRun    time.Time
	LastRun    *time.Time
	CreatedAt  time.Time
	CreatedBy  string
}

type OrganizationRecord struct {
	ID        int64
	Name      string
	Code      string
	Type      string
	ParentID  *int64
	IsActive  bool
	CreatedAt time.Time
}

type IndicatorRecord struct {
	ID   int64
	Name string
	Code string
}

type ProjectRecord struct {
	ID   int64
	Name string
	Code string
}
