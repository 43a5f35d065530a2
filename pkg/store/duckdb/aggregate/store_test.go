package aggregate

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/de-tools/impact-atlas/pkg/models/store"
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

	seed := []string{
		`INSERT INTO organizations (id, name, code) VALUES (100, 'Region East', 'RE'), (200, 'Region West', 'RW')`,
		`INSERT INTO indicators (id, name, code) VALUES (1, 'Wells drilled', 'WASH-01'), (2, 'Teachers trained', 'EDU-01')`,
		`INSERT INTO projects (id, name, code) VALUES (10, 'Water Access', 'WA'), (11, 'Education', 'ED')`,
	}
	for _, q := range seed {
		_, err := db.Exec(q)
		require.NoError(t, err)
	}

	return &fixture{db: db, store: store}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func record(indicator, project, org int64, start, end time.Time, value string) store.MeasurementRecord {
	return store.MeasurementRecord{
		IndicatorID:    indicator,
		ProjectID:      project,
		OrganizationID: org,
		PeriodStart:    start,
		PeriodEnd:      end,
		Value:          json.RawMessage(value),
		CreatedBy:      "tester",
	}
}

func TestAggregateStore_Add(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("returns generated id", func(t *testing.T) {
		id, err := f.store.Add(ctx, record(1, 10, 100, day(2025, 1, 1), day(2025, 1, 31), `5`))
		require.NoError(t, err)
		assert.Greater(t, id, int64(0))
	})

	t.Run("duplicate period is rejected", func(t *testing.T) {
		rec := record(2, 10, 100, day(2025, 2, 1), day(2025, 2, 28), `1`)
		_, err := f.store.Add(ctx, rec)
		require.NoError(t, err)

		_, err = f.store.Add(ctx, rec)
		assert.Error(t, err)
	})

	t.Run("participates in an ambient transaction", func(t *testing.T) {
		tx, err := f.db.BeginTx(ctx, nil)
		require.NoError(t, err)

		txCtx := duckdb.WithTransaction(ctx, tx)
		_, err = f.store.Add(txCtx, record(2, 11, 200, day(2025, 3, 1), day(2025, 3, 31), `7`))
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())

		records, err := f.store.List(ctx, store.MeasurementFilter{OrganizationID: 200})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestAggregateStore_List(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	seed := []store.MeasurementRecord{
		record(1, 10, 100, day(2025, 3, 1), day(2025, 3, 31), `3`),
		record(1, 10, 100, day(2025, 1, 1), day(2025, 1, 31), `5`),
		record(2, 11, 200, day(2025, 2, 1), day(2025, 2, 28), `{"male": 1, "female": 2}`),
	}
	for _, rec := range seed {
		_, err := f.store.Add(ctx, rec)
		require.NoError(t, err)
	}

	t.Run("joins reference names and orders by period start", func(t *testing.T) {
		records, err := f.store.List(ctx, store.MeasurementFilter{})
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, day(2025, 1, 1), records[0].PeriodStart)
		assert.Equal(t, "Wells drilled", records[0].IndicatorName)
		assert.Equal(t, "WASH-01", records[0].IndicatorCode)
		assert.Equal(t, "Water Access", records[0].ProjectName)
		assert.Equal(t, "Region East", records[0].OrganizationName)
	})

	t.Run("filters by indicator list", func(t *testing.T) {
		records, err := f.store.List(ctx, store.MeasurementFilter{IndicatorIDs: []int64{2}})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(2), records[0].IndicatorID)
		assert.JSONEq(t, `{"male": 1, "female": 2}`, string(records[0].Value))
	})

	t.Run("filters by organization and project", func(t *testing.T) {
		records, err := f.store.List(ctx, store.MeasurementFilter{OrganizationID: 100, ProjectID: 10})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("filters by period bounds", func(t *testing.T) {
		from := day(2025, 2, 1)
		to := day(2025, 2, 28)
		records, err := f.store.List(ctx, store.MeasurementFilter{PeriodStartFrom: &from, PeriodEndTo: &to})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(2), records[0].IndicatorID)
	})

	t.Run("none short circuits without querying", func(t *testing.T) {
		records, err := f.store.List(ctx, store.MeasurementFilter{None: true})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		records, err := f.store.List(ctx, store.MeasurementFilter{OrganizationID: 999})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
