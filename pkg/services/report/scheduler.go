package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/models/store"
	"github.com/de-tools/impact-atlas/pkg/store/duckdb/schedule"
)

// ErrInvalidFrequency marks a creation request with a frequency outside
// the supported enumeration.
var ErrInvalidFrequency = errors.New("frequency must be one of daily, weekly, monthly, quarterly")

var validFrequencies = map[string]bool{
	domain.FrequencyDaily:     true,
	domain.FrequencyWeekly:    true,
	domain.FrequencyMonthly:   true,
	domain.FrequencyQuarterly: true,
}

// Scheduler manages recurring report definitions.
type Scheduler struct {
	store schedule.Store
	now   func() time.Time
}

func NewScheduler(store schedule.Store) *Scheduler {
	return &Scheduler{store: store, now: time.Now}
}

// Create persists a definition, deriving next_run from the frequency
// when the caller does not supply one.
func (s *Scheduler) Create(ctx context.Context, caller domain.Caller, def domain.ScheduledReport) (*domain.ScheduledReport, error) {
	if !validFrequencies[def.Frequency] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFrequency, def.Frequency)
	}
	if def.ReportName == "" {
		return nil, fmt.Errorf("report_name is required")
	}
	if def.ReportType == "" {
		def.ReportType = domain.ReportTypeCustom
	}
	if def.NextRun.IsZero() {
		def.NextRun = NextRun(def.Frequency, s.now().UTC())
	}

	recipients, err := json.Marshal(def.Recipients)
	if err != nil {
		return nil, fmt.Errorf("encode recipients: %w", err)
	}

	created, err := s.store.Create(ctx, store.ScheduledReportRecord{
		ReportName: def.ReportName,
		ReportType: def.ReportType,
		Frequency:  def.Frequency,
		Recipients: recipients,
		IsActive:   true,
		NextRun:    def.NextRun,
		CreatedBy:  caller.Subject,
	})
	if err != nil {
		return nil, err
	}
	return scheduledToDomain(created), nil
}

// List returns the caller's definitions; admins see all of them.
func (s *Scheduler) List(ctx context.Context, caller domain.Caller) ([]domain.ScheduledReport, error) {
	createdBy := caller.Subject
	if caller.IsAdmin() {
		createdBy = ""
	}
	records, err := s.store.List(ctx, createdBy)
	if err != nil {
		return nil, err
	}
	defs := make([]domain.ScheduledReport, 0, len(records))
	for i := range records {
		defs = append(defs, *scheduledToDomain(&records[i]))
	}
	return defs, nil
}

func scheduledToDomain(rec *store.ScheduledReportRecord) *domain.ScheduledReport {
	def := &domain.ScheduledReport{
		ID:         rec.ID,
		ReportName: rec.ReportName,
		ReportType: rec.ReportType,
		Frequency:  rec.Frequency,
		IsActive:   rec.IsActive,
		NextRun:    rec.NextRun,
		LastRun:    rec.LastRun,
		CreatedAt:  rec.CreatedAt,
		CreatedBy:  rec.CreatedBy,
	}
	if len(rec.Recipients) > 0 {
		_ = json.Unmarshal(rec.Recipients, &def.Recipients)
	}
	return def
}
