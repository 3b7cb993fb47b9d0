package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/calendar"
)

func TestDay_TruncatesToUTCMidnight(t *testing.T) {
	in := time.Date(2024, 3, 1, 17, 45, 12, 99, time.UTC)

	day := calendar.Day(in)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), day)
}

func TestDay_KeepsCallerCalendarDate(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*3600)
	in := time.Date(2024, 3, 1, 23, 30, 0, 0, zone)

	assert.Equal(t, "2024-03-01", calendar.Key(in))
}

func TestAddDays_CrossesMonthBoundary(t *testing.T) {
	in := time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-01", calendar.Key(calendar.AddDays(in, 2)))
	assert.Equal(t, "2024-02-27", calendar.Key(calendar.AddDays(in, -1)))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

	assert.InDelta(t, 2.5, calendar.DaysBetween(a, b), 1e-9)
	assert.InDelta(t, -2.5, calendar.DaysBetween(b, a), 1e-9)
}

func TestParse(t *testing.T) {
	day, err := calendar.Parse("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), day)

	_, err = calendar.Parse("03/01/2024")
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	c := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, calendar.SameDay(a, b))
	assert.False(t, calendar.SameDay(b, c))
}
