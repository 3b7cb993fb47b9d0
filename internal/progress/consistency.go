package progress

import (
	"sort"
	"time"

	"github.com/vytor/studyflash/internal/calendar"
)

const (
	PatternDaily      = "daily"
	PatternFrequent   = "frequent"
	PatternWeekly     = "weekly"
	PatternIrregular  = "irregular"
	PatternNoActivity = "no_activity"

	// A study day still extends the streak when it is at most this many days older than
	// the streak length.
	streakSlack = 1.5
)

type Consistency struct {
	ConsistencyScore int     `json:"consistency_score"`
	AverageGap       float64 `json:"average_gap"`
	LongestGap       int     `json:"longest_gap"`
	CurrentStreak    int     `json:"current_streak"`
	Pattern          string  `json:"pattern"`
	TotalStudyDays   int     `json:"total_study_days"`
}

// AnalyzeConsistency measures how regularly a learner studies. dates are calendar days
// with study activity; today anchors the current streak.
func AnalyzeConsistency(dates []time.Time, today time.Time) Consistency {
	if len(dates) == 0 {
		return Consistency{Pattern: PatternNoActivity}
	}

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = calendar.Day(d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var total, longest float64
	for i := 1; i < len(days); i++ {
		gap := calendar.DaysBetween(days[i-1], days[i])
		total += gap
		if gap > longest {
			longest = gap
		}
	}
	var avg float64
	if len(days) > 1 {
		avg = total / float64(len(days)-1)
	}

	anchor := calendar.Day(today)
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		if calendar.DaysBetween(days[i], anchor) > float64(streak)+streakSlack {
			break
		}
		streak++
	}

	return Consistency{
		ConsistencyScore: gapScore(avg),
		AverageGap:       roundTo(avg, 1),
		LongestGap:       roundInt(longest),
		CurrentStreak:    streak,
		Pattern:          gapPattern(avg),
		TotalStudyDays:   len(dates),
	}
}

func gapScore(avgGap float64) int {
	switch {
	case avgGap <= 1:
		return 100
	case avgGap <= 2:
		return 80
	case avgGap <= 3:
		return 60
	case avgGap <= 7:
		return 40
	default:
		return 20
	}
}

func gapPattern(avgGap float64) string {
	switch {
	case avgGap <= 1.2:
		return PatternDaily
	case avgGap <= 2.5:
		return PatternFrequent
	case avgGap <= 7:
		return PatternWeekly
	default:
		return PatternIrregular
	}
}
