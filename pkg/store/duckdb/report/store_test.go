package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/de-tools/impact-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	_, err = db.Exec(`
		INSERT INTO reports (id, name, description, report_type, parameters, created_by) VALUES
			(1, 'Quarterly WASH', 'Water indicators', 'indicator', '{"indicator_ids": [1, 2]}', 'admin'),
			(2, 'Raw Export', NULL, 'custom', NULL, NULL)`)
	require.NoError(t, err)

	return &fixture{db: db, store: store}
}

func TestReportStore_Get(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("returns full record", func(t *testing.T) {
		rec, err := f.store.Get(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, "Quarterly WASH", rec.Name)
		assert.Equal(t, "Water indicators", rec.Description)
		assert.Equal(t, "indicator", rec.ReportType)
		assert.JSONEq(t, `{"indicator_ids": [1, 2]}`, string(rec.Parameters))
		assert.Equal(t, "admin", rec.CreatedBy)
		assert.Nil(t, rec.LastGenerated)
		assert.Empty(t, rec.CachedData)
	})

	t.Run("null columns come back zero valued", func(t *testing.T) {
		rec, err := f.store.Get(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, rec.Description)
		assert.Empty(t, rec.Parameters)
		assert.Empty(t, rec.CreatedBy)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.store.Get(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReportStore_SaveSnapshot(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("overwrites cached data and timestamps", func(t *testing.T) {
		generatedAt := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
		snapshot := json.RawMessage(`[{"indicator_id": 1, "total_value": 5}]`)

		require.NoError(t, f.store.SaveSnapshot(ctx, 1, snapshot, generatedAt))

		rec, err := f.store.Get(ctx, 1)
		require.NoError(t, err)
		assert.JSONEq(t, string(snapshot), string(rec.CachedData))
		require.NotNil(t, rec.LastGenerated)
		assert.Equal(t, generatedAt, rec.LastGenerated.UTC())
	})

	t.Run("second save replaces the first", func(t *testing.T) {
		later := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, f.store.SaveSnapshot(ctx, 1, json.RawMessage(`[]`), later))

		rec, err := f.store.Get(ctx, 1)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(rec.CachedData))
		assert.Equal(t, later, rec.LastGenerated.UTC())
	})

	t.Run("unknown id", func(t *testing.T) {
		err := f.store.SaveSnapshot(ctx, 99, json.RawMessage(`[]`), time.Now())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
