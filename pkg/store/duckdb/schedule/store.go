package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/impact-atlas/pkg/models/store"
)

// Store persists scheduled report definitions.
type Store interface {
	Create(ctx context.Context, rec store.ScheduledReportRecord) (*store.ScheduledReportRecord, error)
	List(ctx context.Context, createdBy string) ([]store.ScheduledReportRecord, error)
}

type scheduleStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &scheduleStore{db: db}, nil
}

func (s *scheduleStore) Create(ctx context.Context, rec store.ScheduledReportRecord) (*store.ScheduledReportRecord, error) {
	query := `
		INSERT INTO scheduled_reports (
			report_name, report_type, frequency, recipients,
			is_active, next_run, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	recipients := "[]"
	if len(rec.Recipients) > 0 {
		recipients = string(rec.Recipients)
	}

	err := s.db.QueryRowContext(ctx, query,
		rec.ReportName, rec.ReportType, rec.Frequency, recipients,
		rec.IsActive, rec.NextRun, rec.CreatedBy,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert scheduled report: %w", err)
	}
	return &rec, nil
}

// List returns all definitions when createdBy is empty (the admin
// view), otherwise only those owned by the given creator.
func (s *scheduleStore) List(ctx context.Context, createdBy string) ([]store.ScheduledReportRecord, error) {
	query := `
		SELECT id, report_name, report_type, frequency, recipients,
		       is_active, next_run, last_run, created_at, created_by
		FROM scheduled_reports`
	var args []interface{}
	if createdBy != "" {
		query += " WHERE created_by = ?"
		args = append(args, createdBy)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scheduled reports: %w", err)
	}
	defer rows.Close()

	records := make([]store.ScheduledReportRecord, 0)
	for rows.Next() {
		var (
			rec        store.ScheduledReportRecord
			recipients sql.NullString
			lastRun    sql.NullTime
			createdBy  sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &rec.ReportName, &rec.ReportType, &rec.Frequency, &recipients,
			&rec.IsActive, &rec.NextRun, &lastRun, &rec.CreatedAt, &createdBy,
		); err != nil {
			return nil, err
		}
		if recipients.Valid {
			rec.Recipients = []byte(recipients.String)
		}
		if lastRun.Valid {
			t := lastRun.Time
			rec.LastRun = &t
		}
		rec.CreatedBy = createdBy.String
		records = append(records, rec)
	}
	return records, rows.Err()
}
