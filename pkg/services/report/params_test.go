package report

import (
	"encoding/json"
	"testing"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseParameters(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected domain.ReportParameters
	}{
		{
			name: "id suffixed keys",
			raw:  `{"project_id": 10, "organization_id": 20, "indicator_ids": [1, 2]}`,
			expected: domain.ReportParameters{
				ProjectID:      10,
				OrganizationID: 20,
				IndicatorIDs:   []int64{1, 2},
			},
		},
		{
			name: "bare keys accepted",
			raw:  `{"project": 10, "organization": 20, "indicators": [3]}`,
			expected: domain.ReportParameters{
				ProjectID:      10,
				OrganizationID: 20,
				IndicatorIDs:   []int64{3},
			},
		},
		{
			name: "id suffixed spelling wins",
			raw:  `{"project_id": 1, "project": 2}`,
			expected: domain.ReportParameters{
				ProjectID: 1,
			},
		},
		{
			name: "numeric strings coerce",
			raw:  `{"project_id": "15", "indicator_ids": ["4", 5]}`,
			expected: domain.ReportParameters{
				ProjectID:    15,
				IndicatorIDs: []int64{4, 5},
			},
		},
		{
			name: "dates and format pass through",
			raw:  `{"date_from": "2025-01-01", "date_to": "2025-06-30", "format": "xlsx"}`,
			expected: domain.ReportParameters{
				DateFrom: "2025-01-01",
				DateTo:   "2025-06-30",
				Format:   "xlsx",
			},
		},
		{
			name:     "garbage values ignored",
			raw:      `{"project_id": "abc", "indicator_ids": "not-a-list", "date_from": 42}`,
			expected: domain.ReportParameters{},
		},
		{
			name:     "empty payload",
			raw:      ``,
			expected: domain.ReportParameters{},
		},
		{
			name:     "non object payload",
			raw:      `[1, 2]`,
			expected: domain.ReportParameters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseParameters(json.RawMessage(tt.raw)))
		})
	}
}
