package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/models/store"
	"github.com/de-tools/impact-atlas/pkg/services/access"
	"github.com/de-tools/impact-atlas/pkg/store/duckdb/aggregate"
	"github.com/de-tools/impact-atlas/pkg/store/duckdb/catalog"
)

const trendStable = "stable"

// Aggregator folds scoped measurement records into monthly trend
// series. Buckets come from an explicit range when both dates are
// supplied, otherwise from a rolling window ending at the current
// month.
type Aggregator struct {
	aggregates aggregate.Store
	catalog    catalog.Store
	now        func() time.Time
}

func NewAggregator(aggregates aggregate.Store, cat catalog.Store) *Aggregator {
	return &Aggregator{
		aggregates: aggregates,
		catalog:    cat,
		now:        time.Now,
	}
}

type TrendQuery struct {
	IndicatorID    int64
	OrganizationID int64
	ProjectID      int64
	Months         int
	DateFrom       string
	DateTo         string
}

type BulkTrendQuery struct {
	IndicatorIDs   []int64
	OrganizationID int64
	ProjectID      int64
	Months         int
	DateFrom       string
	DateTo         string
}

// ParseIndicatorIDs splits a delimited id list, silently dropping
// entries that are not plain integers.
func ParseIndicatorIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id < 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// IndicatorTrends computes the single-indicator series. Every bucket
// starts at zero; records are keyed by period_start truncated to day
// one, and records falling outside the bucket list are dropped.
func (a *Aggregator) IndicatorTrends(ctx context.Context, caller domain.Caller, q TrendQuery) (*domain.TrendSeries, error) {
	buckets, err := a.resolveBuckets(q.DateFrom, q.DateTo, q.Months)
	if err != nil {
		return nil, err
	}

	totals, err := a.accumulate(ctx, caller, []int64{q.IndicatorID}, q.OrganizationID, q.ProjectID, q.DateFrom, q.DateTo, buckets)
	if err != nil {
		return nil, err
	}

	points := seriesPoints(buckets, totals[q.IndicatorID])
	series := &domain.TrendSeries{
		Data:  points,
		Trend: trendStable,
	}
	if len(points) > 0 {
		series.Forecast = points[len(points)-1].Value
	}
	return series, nil
}

// BulkTrends computes one independent series per requested indicator,
// sharing a single bucket list and one record fetch. Ids that resolve
// to no known indicator still get a series with a placeholder name.
func (a *Aggregator) BulkTrends(ctx context.Context, caller domain.Caller, q BulkTrendQuery) ([]domain.IndicatorTrendSeries, error) {
	if len(q.IndicatorIDs) == 0 {
		return []domain.IndicatorTrendSeries{}, nil
	}

	buckets, err := a.resolveBuckets(q.DateFrom, q.DateTo, q.Months)
	if err != nil {
		return nil, err
	}

	totals, err := a.accumulate(ctx, caller, q.IndicatorIDs, q.OrganizationID, q.ProjectID, q.DateFrom, q.DateTo, buckets)
	if err != nil {
		return nil, err
	}

	names, err := a.catalog.GetIndicatorNames(ctx, q.IndicatorIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve indicator names: %w", err)
	}

	series := make([]domain.IndicatorTrendSeries, 0, len(q.IndicatorIDs))
	for _, id := range q.IndicatorIDs {
		name, ok := names[id]
		if !ok {
			name = fmt.Sprintf("Indicator %d", id)
		}
		series = append(series, domain.IndicatorTrendSeries{
			IndicatorID:   id,
			IndicatorName: name,
			Data:          seriesPoints(buckets, totals[id]),
		})
	}
	return series, nil
}

func (a *Aggregator) resolveBuckets(dateFrom, dateTo string, months int) ([]time.Time, error) {
	if dateFrom != "" && dateTo != "" {
		start, err := ParseDay(dateFrom)
		if err != nil {
			return nil, err
		}
		end, err := ParseDay(dateTo)
		if err != nil {
			return nil, err
		}
		return MonthRange(start, end)
	}
	if months == 0 {
		months = DefaultWindowMonths
	}
	return RollingWindow(months, a.now()), nil
}

// accumulate fetches scoped records and folds extracted totals into one
// bucket map per indicator.
func (a *Aggregator) accumulate(
	ctx context.Context,
	caller domain.Caller,
	indicatorIDs []int64,
	orgID, projectID int64,
	dateFrom, dateTo string,
	buckets []time.Time,
) (map[int64]map[time.Time]float64, error) {
	totals := make(map[int64]map[time.Time]float64, len(indicatorIDs))
	for _, id := range indicatorIDs {
		byMonth := make(map[time.Time]float64, len(buckets))
		for _, b := range buckets {
			byMonth[b] = 0.0
		}
		totals[id] = byMonth
	}

	lower := buckets[0]
	if dateFrom != "" {
		if d, err := ParseDay(dateFrom); err == nil && d.After(lower) {
			lower = d
		}
	}
	filter := store.MeasurementFilter{
		IndicatorIDs:    indicatorIDs,
		OrganizationID:  orgID,
		ProjectID:       projectID,
		PeriodStartFrom: &lower,
	}
	if dateTo != "" {
		if d, err := ParseDay(dateTo); err == nil {
			filter.PeriodEndTo = &d
		}
	}
	filter = access.ForCaller(caller).Scope(filter)

	records, err := a.aggregates.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch aggregates: %w", err)
	}

	for _, rec := range records {
		byMonth, ok := totals[rec.IndicatorID]
		if !ok {
			continue
		}
		key := MonthStart(rec.PeriodStart)
		if _, known := byMonth[key]; known {
			byMonth[key] += domain.ExtractTotal(rec.Value)
		}
	}
	return totals, nil
}

func seriesPoints(buckets []time.Time, byMonth map[time.Time]float64) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, domain.TrendPoint{
			Month:  MonthLabel(b),
			Value:  byMonth[b],
			Target: 0,
		})
	}
	return points
}
