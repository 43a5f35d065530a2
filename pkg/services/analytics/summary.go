package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/models/store"
	"github.com/de-tools/impact-atlas/pkg/services/access"
)

type SummaryQuery struct {
	IndicatorID    int64
	OrganizationID int64
	ProjectID      int64
	DateFrom       string
	DateTo         string
}

// Summary totals the caller's visible records per indicator, with entry
// counts. Rows come back ordered by indicator id.
func (a *Aggregator) Summary(ctx context.Context, caller domain.Caller, q SummaryQuery) ([]domain.IndicatorSummary, error) {
	filter := store.MeasurementFilter{
		OrganizationID: q.OrganizationID,
		ProjectID:      q.ProjectID,
	}
	if q.IndicatorID != 0 {
		filter.IndicatorIDs = []int64{q.IndicatorID}
	}
	if q.DateFrom != "" {
		if d, err := ParseDay(q.DateFrom); err == nil {
			filter.PeriodStartFrom = &d
		}
	}
	if q.DateTo != "" {
		if d, err := ParseDay(q.DateTo); err == nil {
			filter.PeriodEndTo = &d
		}
	}
	filter = access.ForCaller(caller).Scope(filter)

	records, err := a.aggregates.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch aggregates: %w", err)
	}

	byIndicator := make(map[int64]*domain.IndicatorSummary)
	for _, rec := range records {
		row, ok := byIndicator[rec.IndicatorID]
		if !ok {
			row = &domain.IndicatorSummary{
				IndicatorID:   rec.IndicatorID,
				IndicatorName: rec.IndicatorName,
				Trend:         trendStable,
			}
			byIndicator[rec.IndicatorID] = row
		}
		row.TotalValue += domain.ExtractTotal(rec.Value)
		row.PeriodCount++
	}

	rows := make([]domain.IndicatorSummary, 0, len(byIndicator))
	for _, row := range byIndicator {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].IndicatorID < rows[j].IndicatorID })
	return rows, nil
}
