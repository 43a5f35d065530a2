package report

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/models/store"
	reportstore "github.com/de-tools/impact-atlas/pkg/store/duckdb/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Download(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	cached := json.RawMessage(`[
		{"indicator_id": 1, "indicator_name": "Wells drilled", "total_value": 5, "entries": 2},
		{"indicator_id": 2, "indicator_name": "Teachers trained", "total_value": 12, "entries": 1}
	]`)

	t.Run("renders cached snapshot as csv", func(t *testing.T) {
		reports := &mockReportStore{}
		reports.On("Get", ctx, int64(1)).Return(&store.ReportRecord{
			ID: 1, Name: "Quarterly WASH Report", ReportType: domain.ReportTypeIndicator,
			CachedData: cached,
		}, nil)

		e := testEngine(reports, &mockAggregateStore{}, now)
		download, err := e.Download(ctx, 1, "csv")
		require.NoError(t, err)

		assert.Equal(t, "quarterly-wash-report.csv", download.Filename)
		assert.Equal(t, "text/csv", download.ContentType)

		lines := strings.Split(strings.TrimSpace(string(download.Content)), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "indicator_id,indicator_name,total_value,entries", lines[0])
		assert.Equal(t, "1,Wells drilled,5,2", lines[1])
	})

	t.Run("spreadsheet formats fall back to csv", func(t *testing.T) {
		reports := &mockReportStore{}
		reports.On("Get", ctx, int64(1)).Return(&store.ReportRecord{
			ID: 1, Name: "Report", CachedData: cached,
		}, nil)

		e := testEngine(reports, &mockAggregateStore{}, now)
		download, err := e.Download(ctx, 1, "XLSX")
		require.NoError(t, err)
		assert.Equal(t, "text/csv", download.ContentType)
		assert.Equal(t, "report.csv", download.Filename)
	})

	t.Run("format falls back to stored parameter", func(t *testing.T) {
		reports := &mockReportStore{}
		reports.On("Get", ctx, int64(1)).Return(&store.ReportRecord{
			ID: 1, Name: "Report",
			Parameters: json.RawMessage(`{"format": "csv"}`),
			CachedData: cached,
		}, nil)

		e := testEngine(reports, &mockAggregateStore{}, now)
		download, err := e.Download(ctx, 1, "")
		require.NoError(t, err)
		assert.Equal(t, "report.csv", download.Filename)
	})

	t.Run("empty snapshot renders placeholder", func(t *testing.T) {
		reports := &mockReportStore{}
		reports.On("Get", ctx, int64(1)).Return(&store.ReportRecord{
			ID: 1, Name: "Fresh Report",
		}, nil)

		e := testEngine(reports, &mockAggregateStore{}, now)
		download, err := e.Download(ctx, 1, "csv")
		require.NoError(t, err)
		assert.Equal(t, "No data\n", string(download.Content))
	})

	t.Run("unnamed report falls back to id filename", func(t *testing.T) {
		reports := &mockReportStore{}
		reports.On("Get", ctx, int64(7)).Return(&store.ReportRecord{
			ID: 7, Name: "!!!",
		}, nil)

		e := testEngine(reports, &mockAggregateStore{}, now)
		download, err := e.Download(ctx, 7, "csv")
		require.NoError(t, err)
		assert.Equal(t, "report-7.csv", download.Filename)
	})

	t.Run("unknown report", func(t *testing.T) {
		reports := &mockReportStore{}
		reports.On("Get", ctx, int64(99)).Return(nil, reportstore.ErrNotFound)

		e := testEngine(reports, &mockAggregateStore{}, now)
		_, err := e.Download(ctx, 99, "csv")
		assert.ErrorIs(t, err, reportstore.ErrNotFound)
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "simple", in: "Monthly Report", expected: "monthly-report"},
		{name: "punctuation collapses", in: "Q1 / 2025 -- Draft", expected: "q1-2025-draft"},
		{name: "leading and trailing junk", in: "  (Final)  ", expected: "final"},
		{name: "nothing usable", in: "!!!", expected: ""},
		{name: "already clean", in: "report-2025", expected: "report-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.in))
		})
	}
}
