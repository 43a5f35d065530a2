package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/impact-atlas/pkg/models/store"
)

// ErrNotFound marks a lookup for a report id that does not exist.
var ErrNotFound = errors.New("report not found")

// Store persists report definitions. SaveSnapshot destructively
// overwrites cached_data and last_generated; concurrent generations of
// one report are last-write-wins on purpose.
type Store interface {
	Get(ctx context.Context, id int64) (*store.ReportRecord, error)
	SaveSnapshot(ctx context.Context, id int64, cachedData json.RawMessage, generatedAt time.Time) error
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

func (s *reportStore) Get(ctx context.Context, id int64) (*store.ReportRecord, error) {
	query := `
		SELECT id, name, description, report_type, parameters, cached_data,
		       last_generated, created_at, updated_at, created_by
		FROM reports
		WHERE id = ?`

	var (
		rec           store.ReportRecord
		description   sql.NullString
		parameters    sql.NullString
		cachedData    sql.NullString
		lastGenerated sql.NullTime
		createdBy     sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Name, &description, &rec.ReportType,
		&parameters, &cachedData, &lastGenerated,
		&rec.CreatedAt, &rec.UpdatedAt, &createdBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	rec.Description = description.String
	rec.CreatedBy = createdBy.String
	if parameters.Valid {
		rec.Parameters = []byte(parameters.String)
	}
	if cachedData.Valid {
		rec.CachedData = []byte(cachedData.String)
	}
	if lastGenerated.Valid {
		t := lastGenerated.Time
		rec.LastGenerated = &t
	}
	return &rec, nil
}

func (s *reportStore) SaveSnapshot(ctx context.Context, id int64, cachedData json.RawMessage, generatedAt time.Time) error {
	query := `
		UPDATE reports
		SET cached_data = ?, last_generated = ?, updated_at = ?
		WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, string(cachedData), generatedAt, generatedAt, id)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
