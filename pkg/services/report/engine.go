package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/models/store"
	"github.com/de-tools/impact-atlas/pkg/services/access"
	"github.com/de-tools/impact-atlas/pkg/services/analytics"
	"github.com/de-tools/impact-atlas/pkg/store/duckdb/aggregate"
	reportstore "github.com/de-tools/impact-atlas/pkg/store/duckdb/report"
)

var (
	indicatorColumns = []string{"indicator_id", "indicator_code", "indicator_name", "total_value", "entries"}
	projectColumns   = []string{"project_id", "project_name", "total_value", "entries"}
	customColumns    = []string{
		"indicator_id", "indicator_code", "indicator_name",
		"project_id", "project_name",
		"organization_id", "organization_name",
		"period_start", "period_end", "value",
	}
)

// Engine computes and caches report snapshots. Generate fully replaces
// the stored snapshot; concurrent generations of one report race with
// last-write-wins and no ordering guarantee.
type Engine struct {
	reports    reportstore.Store
	aggregates aggregate.Store
	now        func() time.Time
}

func NewEngine(reports reportstore.Store, aggregates aggregate.Store) *Engine {
	return &Engine{
		reports:    reports,
		aggregates: aggregates,
		now:        time.Now,
	}
}

// Generate recomputes a report's snapshot from its stored parameters
// within the caller's access scope and persists it together with the
// generation timestamp.
func (e *Engine) Generate(ctx context.Context, caller domain.Caller, reportID int64) (*domain.Report, error) {
	rec, err := e.reports.Get(ctx, reportID)
	if err != nil {
		return nil, err
	}

	params := parseParameters(rec.Parameters)
	filter := store.MeasurementFilter{
		ProjectID:      params.ProjectID,
		OrganizationID: params.OrganizationID,
		IndicatorIDs:   params.IndicatorIDs,
	}
	if params.DateFrom != "" {
		if d, err := analytics.ParseDay(params.DateFrom); err == nil {
			filter.PeriodStartFrom = &d
		}
	}
	if params.DateTo != "" {
		if d, err := analytics.ParseDay(params.DateTo); err == nil {
			filter.PeriodEndTo = &d
		}
	}
	filter = access.ForCaller(caller).Scope(filter)

	records, err := e.aggregates.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch aggregates: %w", err)
	}

	rows := buildRows(rec.ReportType, records)
	cached, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	generatedAt := e.now().UTC()
	if err := e.reports.SaveSnapshot(ctx, rec.ID, cached, generatedAt); err != nil {
		return nil, err
	}

	result := toDomain(rec, params)
	result.CachedRows = rows
	result.LastGenerated = &generatedAt
	result.UpdatedAt = generatedAt
	return result, nil
}

// Get returns a report with its current snapshot, without
// recomputation.
func (e *Engine) Get(ctx context.Context, reportID int64) (*domain.Report, error) {
	rec, err := e.reports.Get(ctx, reportID)
	if err != nil {
		return nil, err
	}
	result := toDomain(rec, parseParameters(rec.Parameters))
	result.CachedRows = rowsFromCache(rec.CachedData)
	return result, nil
}

func buildRows(reportType string, records []store.MeasurementRecord) []domain.Row {
	switch reportType {
	case domain.ReportTypeIndicator:
		return groupedRows(records, indicatorColumns, func(rec store.MeasurementRecord) (int64, map[string]any) {
			return rec.IndicatorID, map[string]any{
				"indicator_id":   rec.IndicatorID,
				"indicator_code": rec.IndicatorCode,
				"indicator_name": rec.IndicatorName,
			}
		})
	case domain.ReportTypeProject:
		return groupedRows(records, projectColumns, func(rec store.MeasurementRecord) (int64, map[string]any) {
			return rec.ProjectID, map[string]any{
				"project_id":   rec.ProjectID,
				"project_name": rec.ProjectName,
			}
		})
	default:
		rows := make([]domain.Row, 0, len(records))
		for _, rec := range records {
			rows = append(rows, domain.Row{
				Columns: customColumns,
				Values: map[string]any{
					"indicator_id":      rec.IndicatorID,
					"indicator_code":    rec.IndicatorCode,
					"indicator_name":    rec.IndicatorName,
					"project_id":        rec.ProjectID,
					"project_name":      rec.ProjectName,
					"organization_id":   rec.OrganizationID,
					"organization_name": rec.OrganizationName,
					"period_start":      rec.PeriodStart.Format("2006-01-02"),
					"period_end":        rec.PeriodEnd.Format("2006-01-02"),
					"value":             domain.ExtractTotal(rec.Value),
				},
			})
		}
		return rows
	}
}

// groupedRows folds records into one row per group key, accumulating
// total_value and entries, first-seen group order preserved before the
// descending total sort.
func groupedRows(
	records []store.MeasurementRecord,
	columns []string,
	key func(store.MeasurementRecord) (int64, map[string]any),
) []domain.Row {
	index := make(map[int64]int)
	rows := make([]domain.Row, 0)

	for _, rec := range records {
		id, base := key(rec)
		i, ok := index[id]
		if !ok {
			base["total_value"] = 0.0
			base["entries"] = 0
			rows = append(rows, domain.Row{Columns: columns, Values: base})
			i = len(rows) - 1
			index[id] = i
		}
		values := rows[i].Values
		values["total_value"] = values["total_value"].(float64) + domain.ExtractTotal(rec.Value)
		values["entries"] = values["entries"].(int) + 1
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Values["total_value"].(float64) > rows[j].Values["total_value"].(float64)
	})
	return rows
}

func toDomain(rec *store.ReportRecord, params domain.ReportParameters) *domain.Report {
	return &domain.Report{
		ID:            rec.ID,
		Name:          rec.Name,
		Description:   rec.Description,
		ReportType:    rec.ReportType,
		Parameters:    params,
		LastGenerated: rec.LastGenerated,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		CreatedBy:     rec.CreatedBy,
	}
}
