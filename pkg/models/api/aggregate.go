package api

import "encoding/json"

// BulkAggregates is a multi-item submission sharing one project,
// organization and period. The whole batch commits or none of it does.
type BulkAggregates struct {
	Project      int64               `json:"project"`
	Organization int64               `json:"organization"`
	PeriodStart  string              `json:"period_start"`
	PeriodEnd    string              `json:"period_end"`
	Data         []BulkAggregateItem `json:"data"`
}

type BulkAggregateItem struct {
	Indicator int64           `json:"indicator"`
	Value     json.RawMessage `json:"value"`
	Notes     string          `json:"notes"`
}

type BulkAggregatesResult struct {
	Created int `json:"created"`
}
