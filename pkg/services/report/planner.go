package report

import (
	"time"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
)

// NextRun computes the next scheduled run as a fixed offset from now.
// The 30-day month and 90-day quarter are deliberate: the scheduler is
// a naive offset planner, not a calendar cron. Unknown frequencies get
// the weekly offset.
func NextRun(frequency string, now time.Time) time.Time {
	switch frequency {
	case domain.FrequencyDaily:
		return now.Add(24 * time.Hour)
	case domain.FrequencyWeekly:
		return now.Add(7 * 24 * time.Hour)
	case domain.FrequencyMonthly:
		return now.Add(30 * 24 * time.Hour)
	case domain.FrequencyQuarterly:
		return now.Add(90 * 24 * time.Hour)
	default:
		return now.Add(7 * 24 * time.Hour)
	}
}
