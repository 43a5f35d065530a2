package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockScheduleStore struct {
	mock.Mock
}

func (m *mockScheduleStore) Create(ctx context.Context, rec store.ScheduledReportRecord) (*store.ScheduledReportRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ScheduledReportRecord), args.Error(1)
}

func (m *mockScheduleStore) List(ctx context.Context, createdBy string) ([]store.ScheduledReportRecord, error) {
	args := m.Called(ctx, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ScheduledReportRecord), args.Error(1)
}

func testScheduler(st *mockScheduleStore, now time.Time) *Scheduler {
	s := NewScheduler(st)
	s.now = func() time.Time { return now }
	return s
}

func TestScheduler_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	officer := domain.Caller{Subject: "officer@example.org", Role: domain.RoleOfficer, OrganizationID: 1}

	t.Run("derives next run from frequency", func(t *testing.T) {
		st := &mockScheduleStore{}
		st.On("Create", ctx, mock.MatchedBy(func(rec store.ScheduledReportRecord) bool {
			return rec.ReportName == "Weekly digest" &&
				rec.ReportType == domain.ReportTypeCustom &&
				rec.IsActive &&
				rec.CreatedBy == "officer@example.org" &&
				rec.NextRun.Equal(now.Add(7*24*time.Hour))
		})).Return(&store.ScheduledReportRecord{
			ID: 1, ReportName: "Weekly digest", ReportType: domain.ReportTypeCustom,
			Frequency: domain.FrequencyWeekly, IsActive: true,
			NextRun: now.Add(7 * 24 * time.Hour), CreatedBy: "officer@example.org",
			Recipients: json.RawMessage(`["lead@example.org"]`),
		}, nil)

		s := testScheduler(st, now)
		created, err := s.Create(ctx, officer, domain.ScheduledReport{
			ReportName: "Weekly digest",
			Frequency:  domain.FrequencyWeekly,
			Recipients: []string{"lead@example.org"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, []string{"lead@example.org"}, created.Recipients)
		st.AssertExpectations(t)
	})

	t.Run("explicit next run wins", func(t *testing.T) {
		explicit := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		st := &mockScheduleStore{}
		st.On("Create", ctx, mock.MatchedBy(func(rec store.ScheduledReportRecord) bool {
			return rec.NextRun.Equal(explicit)
		})).Return(&store.ScheduledReportRecord{ID: 2, NextRun: explicit}, nil)

		s := testScheduler(st, now)
		_, err := s.Create(ctx, officer, domain.ScheduledReport{
			ReportName: "Monthly",
			Frequency:  domain.FrequencyMonthly,
			NextRun:    explicit,
		})
		require.NoError(t, err)
		st.AssertExpectations(t)
	})

	t.Run("invalid frequency", func(t *testing.T) {
		s := testScheduler(&mockScheduleStore{}, now)
		_, err := s.Create(ctx, officer, domain.ScheduledReport{
			ReportName: "Broken",
			Frequency:  "yearly",
		})
		assert.ErrorIs(t, err, ErrInvalidFrequency)
	})

	t.Run("missing name", func(t *testing.T) {
		s := testScheduler(&mockScheduleStore{}, now)
		_, err := s.Create(ctx, officer, domain.ScheduledReport{
			Frequency: domain.FrequencyDaily,
		})
		assert.Error(t, err)
	})
}

func TestScheduler_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("admin lists all definitions", func(t *testing.T) {
		st := &mockScheduleStore{}
		st.On("List", ctx, "").Return([]store.ScheduledReportRecord{
			{ID: 1, ReportName: "A"},
			{ID: 2, ReportName: "B"},
		}, nil)

		s := testScheduler(st, now)
		defs, err := s.List(ctx, domain.Caller{Subject: "root", Role: domain.RoleAdmin})
		require.NoError(t, err)
		assert.Len(t, defs, 2)
		st.AssertExpectations(t)
	})

	t.Run("member lists own definitions", func(t *testing.T) {
		st := &mockScheduleStore{}
		st.On("List", ctx, "officer@example.org").Return([]store.ScheduledReportRecord{
			{ID: 1, ReportName: "Mine"},
		}, nil)

		s := testScheduler(st, now)
		defs, err := s.List(ctx, domain.Caller{Subject: "officer@example.org", Role: domain.RoleOfficer, OrganizationID: 1})
		require.NoError(t, err)
		assert.Len(t, defs, 1)
		st.AssertExpectations(t)
	})

	t.Run("store error surfaces", func(t *testing.T) {
		st := &mockScheduleStore{}
		st.On("List", ctx, "").Return(nil, errors.New("db down"))

		s := testScheduler(st, now)
		_, err := s.List(ctx, domain.Caller{Subject: "root", Role: domain.RoleAdmin})
		assert.Error(t, err)
	})
}
