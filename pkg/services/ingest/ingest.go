package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/models/store"
	"github.com/de-tools/impact-atlas/pkg/services/analytics"
	"github.com/de-tools/impact-atlas/pkg/store/duckdb"
	"github.com/de-tools/impact-atlas/pkg/store/duckdb/aggregate"
	"github.com/rs/zerolog"
)

// ErrValidation marks a batch rejected before any write happened.
var ErrValidation = errors.New("invalid bulk submission")

// Batch is a multi-item measurement submission sharing one project,
// organization and reporting period.
type Batch struct {
	ProjectID      int64
	OrganizationID int64
	PeriodStart    string
	PeriodEnd      string
	Items          []Item
}

type Item struct {
	IndicatorID int64
	Value       json.RawMessage
	Notes       string
}

// Service ingests measurement batches atomically: every item commits or
// none do. Readers of the analytics core therefore only ever see fully
// committed batches.
type Service struct {
	db         *sql.DB
	aggregates aggregate.Store
}

func NewService(db *sql.DB, aggregates aggregate.Store) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Service{db: db, aggregates: aggregates}, nil
}

// BulkCreate validates the whole batch, then writes every item in one
// transaction, rolling back on the first failure.
func (s *Service) BulkCreate(ctx context.Context, caller domain.Caller, batch Batch) (int, error) {
	if batch.ProjectID == 0 || batch.OrganizationID == 0 || batch.PeriodStart == "" || batch.PeriodEnd == "" {
		return 0, fmt.Errorf("%w: project, organization, period_start, period_end required", ErrValidation)
	}
	if len(batch.Items) == 0 {
		return 0, fmt.Errorf("%w: data list required", ErrValidation)
	}

	start, err := analytics.ParseDay(batch.PeriodStart)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	end, err := analytics.ParseDay(batch.PeriodEnd)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if start.After(end) {
		return 0, fmt.Errorf("%w: period_start must not be after period_end", ErrValidation)
	}
	for _, item := range batch.Items {
		if item.IndicatorID == 0 {
			return 0, fmt.Errorf("%w: every item needs an indicator", ErrValidation)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	txCtx := duckdb.WithTransaction(ctx, tx)

	created := 0
	for _, item := range batch.Items {
		value := item.Value
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		_, err := s.aggregates.Add(txCtx, store.MeasurementRecord{
			IndicatorID:    item.IndicatorID,
			ProjectID:      batch.ProjectID,
			OrganizationID: batch.OrganizationID,
			PeriodStart:    start,
			PeriodEnd:      end,
			Value:          value,
			Notes:          item.Notes,
			CreatedBy:      caller.Subject,
		})
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				zerolog.Ctx(ctx).Error().Err(rbErr).Msg("rollback failed")
			}
			return 0, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		created++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}
	return created, nil
}
