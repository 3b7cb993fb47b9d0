package flashcard

import (
	"fmt"
	"math"
	"sort"

	"github.com/vytor/studyflash/internal/calendar"
	"github.com/vytor/studyflash/internal/models"
)

const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"

	MasteryBeginner     = "beginner"
	MasteryIntermediate = "intermediate"
	MasteryAdvanced     = "advanced"
	MasteryExpert       = "expert"

	// Only the most recent reviews count toward quality and trend.
	recentWindow = 10
	// Minimum change in mean quality between window halves to call a trend.
	trendThreshold = 0.5
)

type ReviewAnalytics struct {
	AverageQuality            float64 `json:"average_quality"`
	ImprovementTrend          string  `json:"improvement_trend"`
	MasteryLevel              string  `json:"mastery_level"`
	ConsistencyScore          int     `json:"consistency_score"`
	TotalReviews              int     `json:"total_reviews"`
	AverageDaysBetweenReviews float64 `json:"average_days_between_reviews"`
}

// AnalyzeReviews summarises a review history. Events are ordered by time before analysis;
// an event without a timestamp fails with ErrInvalidShape.
func AnalyzeReviews(history []models.ReviewEvent) (ReviewAnalytics, error) {
	for i, ev := range history {
		if ev.ReviewedAt.IsZero() {
			return ReviewAnalytics{}, fmt.Errorf("%w: review %d has no timestamp", ErrInvalidShape, i)
		}
	}
	if len(history) == 0 {
		return ReviewAnalytics{
			ImprovementTrend: TrendInsufficientData,
			MasteryLevel:     MasteryBeginner,
		}, nil
	}

	events := make([]models.ReviewEvent, len(history))
	copy(events, history)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ReviewedAt.Before(events[j].ReviewedAt)
	})

	recent := events
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	avg := meanQuality(recent)

	trend := TrendStable
	if half := len(recent) / 2; half > 0 {
		first, second := meanQuality(recent[:half]), meanQuality(recent[half:])
		switch {
		case second > first+trendThreshold:
			trend = TrendImproving
		case second < first-trendThreshold:
			trend = TrendDeclining
		}
	}

	var totalGap float64
	for i := 1; i < len(events); i++ {
		totalGap += calendar.DaysBetween(events[i-1].ReviewedAt, events[i].ReviewedAt)
	}
	var meanGap float64
	consistency := 0
	if gaps := len(events) - 1; gaps > 0 {
		meanGap = totalGap / float64(gaps)
		score := math.Max(0, 100-(meanGap-1)*10)
		consistency = int(math.Min(100, math.Floor(score+0.5)))
	}

	return ReviewAnalytics{
		AverageQuality:            round2(avg),
		ImprovementTrend:          trend,
		MasteryLevel:              reviewMastery(avg),
		ConsistencyScore:          consistency,
		TotalReviews:              len(events),
		AverageDaysBetweenReviews: round1(meanGap),
	}, nil
}

func reviewMastery(avgQuality float64) string {
	switch {
	case avgQuality >= 4.5:
		return MasteryExpert
	case avgQuality >= 3.5:
		return MasteryAdvanced
	case avgQuality >= 2.5:
		return MasteryIntermediate
	default:
		return MasteryBeginner
	}
}

func meanQuality(events []models.ReviewEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	sum := 0
	for _, ev := range events {
		sum += ClampQuality(ev.Quality)
	}
	return float64(sum) / float64(len(events))
}
