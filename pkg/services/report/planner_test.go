package report

import (
	"testing"
	"time"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestNextRun(t *testing.T) {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		frequency string
		expected  time.Time
	}{
		{name: "daily", frequency: domain.FrequencyDaily, expected: now.Add(24 * time.Hour)},
		{name: "weekly", frequency: domain.FrequencyWeekly, expected: now.Add(7 * 24 * time.Hour)},
		{name: "monthly is a fixed 30 days", frequency: domain.FrequencyMonthly, expected: now.Add(30 * 24 * time.Hour)},
		{name: "quarterly is a fixed 90 days", frequency: domain.FrequencyQuarterly, expected: now.Add(90 * 24 * time.Hour)},
		{name: "unknown defaults to weekly", frequency: "fortnightly", expected: now.Add(7 * 24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextRun(tt.frequency, now))
		})
	}
}
