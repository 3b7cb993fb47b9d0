package flashcard

import (
	"math"
	"time"

	"github.com/vytor/studyflash/internal/calendar"
	"github.com/vytor/studyflash/internal/models"
)

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MinQuality        = 0
	MaxQuality        = 5

	// Reviews below this quality restart the card at a one day interval.
	passingQuality = 3
	// Upper bound on a computed interval, roughly a century.
	maxIntervalDays = 36500
)

// Estimate is the scheduling state produced by a single review.
type Estimate struct {
	NextReview      time.Time `json:"next_review"`
	EaseFactor      float64   `json:"ease_factor"`
	IntervalDays    int       `json:"interval_days"`
	RepetitionCount int       `json:"repetition_count"`
}

// ClampQuality forces a review grade into [MinQuality, MaxQuality].
func ClampQuality(q int) int {
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

// EstimateInterval computes the next SM-2 state of a card after a review graded quality
// (0..5) on day today. Out of range inputs are sanitised, never rejected.
func EstimateInterval(quality, repetitionCount int, easeFactor float64, interval int, today time.Time) Estimate {
	quality = ClampQuality(quality)
	if easeFactor <= 0 || math.IsNaN(easeFactor) || math.IsInf(easeFactor, 0) {
		easeFactor = DefaultEaseFactor
	}
	if interval < 1 {
		interval = 1
	}
	if repetitionCount < 0 {
		repetitionCount = 0
	}

	miss := float64(MaxQuality - quality)
	ef := easeFactor + (0.1 - miss*(0.08+miss*0.02))
	if ef < MinEaseFactor {
		ef = MinEaseFactor
	}

	var next int
	switch {
	case quality < passingQuality:
		next = 1
	case repetitionCount == 0:
		next = 1
	case repetitionCount == 1:
		next = 6
	default:
		next = int(math.Min(math.Round(float64(interval)*ef), maxIntervalDays))
	}

	return Estimate{
		NextReview:      calendar.AddDays(today, next),
		EaseFactor:      round2(ef),
		IntervalDays:    next,
		RepetitionCount: repetitionCount + 1,
	}
}

// ApplyReview updates card scheduling using the SM-2 algorithm.
// quality: 0=blackout .. 5=perfect recall
func ApplyReview(card models.Flashcard, quality int, today time.Time) models.Flashcard {
	est := EstimateInterval(quality, card.RepetitionCount, card.EaseFactor, card.IntervalDays, today)
	card.EaseFactor = est.EaseFactor
	card.IntervalDays = est.IntervalDays
	card.RepetitionCount = est.RepetitionCount
	card.NextReview = est.NextReview
	return card
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
