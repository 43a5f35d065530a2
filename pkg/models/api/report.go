package api

import (
	"encoding/json"
	"time"
)

type Report struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	ReportType    string            `json:"report_type"`
	Parameters    json.RawMessage   `json:"parameters"`
	CachedData    json.RawMessage   `json:"cached_data"`
	LastGenerated *time.Time        `json:"last_generated"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type ScheduledReport struct {
	ID         int64      `json:"id"`
	ReportName string     `json:"report_name"`
	ReportType string     `json:"report_type"`
	Frequency  string     `json:"frequency"`
	Recipients []string   `json:"recipients"`
	IsActive   bool       `json:"is_active"`
	NextRun    time.Time  `json:"next_run"`
	LastRun    *time.Time `json:"last_run"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CreateScheduledReport struct {
	ReportName string     `json:"report_name"`
	ReportType string     `json:"report_type"`
	Frequency  string     `json:"frequency"`
	Recipients []string   `json:"recipients"`
	NextRun    *time.Time `json:"next_run"`
}
