package dates_test

import (
	"testing"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, 1, 30, 23, 59, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 30, dates.DaysBetween(from, to))
	assert.Equal(t, -30, dates.DaysBetween(to, from))
	assert.Equal(t, 0, dates.DaysBetween(from, from.Add(time.Minute)))
}

func TestAddDaysCrossesMonth(t *testing.T) {
	start := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), dates.AddDays(start, 60))
}

func TestPeriods(t *testing.T) {
	tests := []struct {
		month  time.Month
		period int
	}{
		{time.January, 1},
		{time.February, 1},
		{time.March, 2},
		{time.October, 5},
		{time.December, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.period, dates.PeriodOf(tt.month), tt.month.String())
	}

	first, second, err := dates.PeriodMonths(3)
	require.NoError(t, err)
	assert.Equal(t, time.May, first)
	assert.Equal(t, time.June, second)
	assert.Equal(t, "May - Jun", dates.PeriodLabel(3))

	_, _, err = dates.PeriodMonths(7)
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	m, err := dates.ParseMonth("2026-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-02", dates.MonthKey(m))
	assert.True(t, dates.InMonth(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), "2026-02"))

	_, err = dates.ParseMonth("02-2026")
	assert.Error(t, err)
}
