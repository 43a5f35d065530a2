package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/de-tools/impact-atlas/pkg/models/store"
)

// Store is the reference-data lookup: organization rows for the
// hierarchy arena and indicator names for series labelling.
type Store interface {
	ListOrganizations(ctx context.Context) ([]store.OrganizationRecord, error)
	GetIndicatorNames(ctx context.Context, ids []int64) (map[int64]string, error)
}

type catalogStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &catalogStore{db: db}, nil
}

func (s *catalogStore) ListOrganizations(ctx context.Context) ([]store.OrganizationRecord, error) {
	query := `
		SELECT id, name, code, type, parent_id, is_active, created_at
		FROM organizations
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query organizations: %w", err)
	}
	defer rows.Close()

	orgs := make([]store.OrganizationRecord, 0)
	for rows.Next() {
		var (
			rec    store.OrganizationRecord
			parent sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Code, &rec.Type, &parent, &rec.IsActive, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if parent.Valid {
			p := parent.Int64
			rec.ParentID = &p
		}
		orgs = append(orgs, rec)
	}
	return orgs, rows.Err()
}

func (s *catalogStore) GetIndicatorNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	query := fmt.Sprintf("SELECT id, name FROM indicators WHERE id IN (%s)", placeholders)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query indicators: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
