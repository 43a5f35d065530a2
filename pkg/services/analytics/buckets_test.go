package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		day, err := ParseDay("2025-03-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), day)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := ParseDay("15/03/2025")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2025, 6, 23, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan 2025", MonthLabel(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Dec 2024", MonthLabel(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestMonthRange(t *testing.T) {
	t.Run("spans year boundary", func(t *testing.T) {
		months, err := MonthRange(
			time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{
			time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		}, months)
	})

	t.Run("same month", func(t *testing.T) {
		months, err := MonthRange(
			time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Len(t, months, 1)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := MonthRange(
			time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestRollingWindow(t *testing.T) {
	now := time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)

	t.Run("oldest first ending at current month", func(t *testing.T) {
		buckets := RollingWindow(3, now)
		assert.Equal(t, []time.Time{
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		}, buckets)
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		buckets := RollingWindow(4, now)
		assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), buckets[0])
	})

	t.Run("clamps below minimum", func(t *testing.T) {
		assert.Len(t, RollingWindow(0, now), 1)
		assert.Len(t, RollingWindow(-5, now), 1)
	})

	t.Run("clamps above maximum", func(t *testing.T) {
		assert.Len(t, RollingWindow(120, now), 36)
	})
}

func TestClampWindow(t *testing.T) {
	assert.Equal(t, 1, ClampWindow(0))
	assert.Equal(t, 1, ClampWindow(-10))
	assert.Equal(t, 12, ClampWindow(12))
	assert.Equal(t, 36, ClampWindow(36))
	assert.Equal(t, 36, ClampWindow(37))
}
