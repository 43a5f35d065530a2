package aggregate

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/impact-atlas/pkg/models/store"
	"github.com/de-tools/impact-atlas/pkg/store/duckdb"
)

// Store holds measurement records ("aggregates"). List resolves
// indicator/project/organization names in one query so callers never
// chase references; Add participates in an ambient transaction when one
// is present on the context.
type Store interface {
	Add(ctx context.Context, record store.MeasurementRecord) (int64, error)
	List(ctx context.Context, f store.MeasurementFilter) ([]store.MeasurementRecord, error)
}

type aggregateStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &aggregateStore{db: db}, nil
}

func (s *aggregateStore) Add(ctx context.Context, record store.MeasurementRecord) (int64, error) {
	query := `
		INSERT INTO aggregates (
			indicator_id, project_id, organization_id,
			period_start, period_end, value, notes, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	args := []interface{}{
		record.IndicatorID,
		record.ProjectID,
		record.OrganizationID,
		record.PeriodStart,
		record.PeriodEnd,
		string(record.Value),
		record.Notes,
		record.CreatedBy,
	}

	var id int64
	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("insert aggregate: %w", err)
	}
	return id, nil
}

func (s *aggregateStore) List(ctx context.Context, f store.MeasurementFilter) ([]store.MeasurementRecord, error) {
	if f.None {
		return []store.MeasurementRecord{}, nil
	}

	query := `
		SELECT a.id, a.indicator_id, i.name, i.code,
		       a.project_id, p.name,
		       a.organization_id, o.name,
		       a.period_start, a.period_end, a.value, a.notes, a.created_at
		FROM aggregates a
		JOIN indicators i ON i.id = a.indicator_id
		JOIN projects p ON p.id = a.project_id
		JOIN organizations o ON o.id = a.organization_id
	`

	var conditions []string
	var args []interface{}

	if len(f.IndicatorIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(f.IndicatorIDs)), ",")
		conditions = append(conditions, fmt.Sprintf("a.indicator_id IN (%s)", placeholders))
		for _, id := range f.IndicatorIDs {
			args = append(args, id)
		}
	}
	if f.ProjectID != 0 {
		conditions = append(conditions, "a.project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.OrganizationID != 0 {
		conditions = append(conditions, "a.organization_id = ?")
		args = append(args, f.OrganizationID)
	}
	if f.PeriodStartFrom != nil {
		conditions = append(conditions, "a.period_start >= ?")
		args = append(args, *f.PeriodStartFrom)
	}
	if f.PeriodEndTo != nil {
		conditions = append(conditions, "a.period_end <= ?")
		args = append(args, *f.PeriodEndTo)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.period_start"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query aggregates: %w", err)
	}
	defer rows.Close()
	return scanMeasurementRows(rows)
}

func scanMeasurementRows(rows *sql.Rows) ([]store.MeasurementRecord, error) {
	records := make([]store.MeasurementRecord, 0)
	for rows.Next() {
		var (
			rec   store.MeasurementRecord
			value string
			notes sql.NullString
			start time.Time
			end   time.Time
		)
		if err := rows.Scan(
			&rec.ID, &rec.IndicatorID, &rec.IndicatorName, &rec.IndicatorCode,
			&rec.ProjectID, &rec.ProjectName,
			&rec.OrganizationID, &rec.OrganizationName,
			&start, &end, &value, &notes, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.PeriodStart = start
		rec.PeriodEnd = end
		rec.Value = []byte(value)
		rec.Notes = notes.String
		records = append(records, rec)
	}
	return records, rows.Err()
}
