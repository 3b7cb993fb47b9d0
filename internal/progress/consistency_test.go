package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/studyflash/internal/calendar"
	"github.com/vytor/studyflash/internal/progress"
)

var now = time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)

func daysAgo(offsets ...int) []time.Time {
	out := make([]time.Time, 0, len(offsets))
	for _, o := range offsets {
		out = append(out, calendar.AddDays(now, -o).Add(10*time.Hour))
	}
	return out
}

func TestAnalyzeConsistency_NoActivity(t *testing.T) {
	c := progress.AnalyzeConsistency(nil, now)

	assert.Equal(t, progress.Consistency{Pattern: progress.PatternNoActivity}, c)
}

func TestAnalyzeConsistency_Daily(t *testing.T) {
	c := progress.AnalyzeConsistency(daysAgo(4, 3, 2, 1, 0), now)

	assert.Equal(t, progress.Consistency{
		ConsistencyScore: 100,
		AverageGap:       1,
		LongestGap:       1,
		CurrentStreak:    5,
		Pattern:          progress.PatternDaily,
		TotalStudyDays:   5,
	}, c)
}

func TestAnalyzeConsistency_EveryOtherDay(t *testing.T) {
	c := progress.AnalyzeConsistency(daysAgo(0, 2, 4), now)

	assert.Equal(t, 80, c.ConsistencyScore)
	assert.Equal(t, progress.PatternFrequent, c.Pattern)
	assert.Equal(t, 2, c.CurrentStreak)
	assert.Equal(t, 2, c.LongestGap)
}

func TestAnalyzeConsistency_LapsedStreak(t *testing.T) {
	c := progress.AnalyzeConsistency(daysAgo(10, 7, 3), now)

	assert.Equal(t, 40, c.ConsistencyScore)
	assert.Equal(t, 3.5, c.AverageGap)
	assert.Equal(t, 4, c.LongestGap)
	assert.Equal(t, progress.PatternWeekly, c.Pattern)
	assert.Zero(t, c.CurrentStreak)
}

func TestAnalyzeConsistency_SingleDayYesterday(t *testing.T) {
	c := progress.AnalyzeConsistency(daysAgo(1), now)

	assert.Equal(t, 100, c.ConsistencyScore)
	assert.Equal(t, progress.PatternDaily, c.Pattern)
	assert.Equal(t, 1, c.CurrentStreak)
	assert.Equal(t, 1, c.TotalStudyDays)
}

func TestAnalyzeConsistency_Irregular(t *testing.T) {
	c := progress.AnalyzeConsistency(daysAgo(60, 30, 0), now)

	assert.Equal(t, 20, c.ConsistencyScore)
	assert.Equal(t, progress.PatternIrregular, c.Pattern)
	assert.Equal(t, 30, c.LongestGap)
	assert.Equal(t, 1, c.CurrentStreak)
}

func TestAnalyzeConsistency_UnsortedInput(t *testing.T) {
	ordered := progress.AnalyzeConsistency(daysAgo(4, 3, 2, 1, 0), now)
	shuffled := progress.AnalyzeConsistency(daysAgo(2, 0, 4, 1, 3), now)

	assert.Equal(t, ordered, shuffled)
}
