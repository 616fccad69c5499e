package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStart(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Almaty")
	require.NoError(t, err)

	// 21:30 UTC is already the next day in Almaty (UTC+5).
	evening := time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC)
	day := DayStart(evening, loc)

	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 15, day.Day())
	assert.Zero(t, day.Hour())
	assert.Equal(t, loc, day.Location())
}

func TestDayStartIsIdempotent(t *testing.T) {
	now := time.Now()
	once := DayStart(now, time.UTC)
	twice := DayStart(once, time.UTC)
	assert.True(t, once.Equal(twice))
}

func TestDayEndSameCalendarDay(t *testing.T) {
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	end := DayEnd(noon, time.UTC)

	assert.Equal(t, 14, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.After(noon))
	assert.True(t, end.Before(DayStart(noon, time.UTC).AddDate(0, 0, 1)))
}
