package flashcard

import (
	"sort"
	"time"

	"github.com/vytor/studyflash/internal/calendar"
	"github.com/vytor/studyflash/internal/models"
)

// DefaultScheduleDays is the window callers use when none is given.
const DefaultScheduleDays = 7

// Schedule maps a day key (calendar.KeyLayout) to the cards due that day.
type Schedule map[string][]models.CardSummary

// GenerateSchedule buckets cards by review date over daysAhead days starting today.
// Every day in the window has a bucket, possibly empty; a non-positive daysAhead yields
// no buckets. Cards due before today or after the window are not included.
func GenerateSchedule(cards []models.CardSummary, daysAhead int, today time.Time) Schedule {
	if daysAhead < 0 {
		daysAhead = 0
	}

	s := make(Schedule, daysAhead)
	for i := 0; i < daysAhead; i++ {
		s[calendar.Key(calendar.AddDays(today, i))] = []models.CardSummary{}
	}
	for _, c := range cards {
		key := calendar.Key(c.NextReview)
		if bucket, ok := s[key]; ok {
			s[key] = append(bucket, c)
		}
	}
	return s
}

// Days returns the schedule's day keys in chronological order.
func (s Schedule) Days() []string {
	days := make([]string, 0, len(s))
	for k := range s {
		days = append(days, k)
	}
	sort.Strings(days)
	return days
}

// Total counts the cards across all days.
func (s Schedule) Total() int {
	n := 0
	for _, cards := range s {
		n += len(cards)
	}
	return n
}
