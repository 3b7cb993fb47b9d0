package flashcard

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/studyflash/internal/calendar"
	"github.com/vytor/studyflash/internal/models"
)

// DefaultSessionMinutes is the study budget callers use when none is given.
const DefaultSessionMinutes = 20.0

type Batch struct {
	RecommendedCards []models.CardSummary `json:"recommended_cards"`
	EstimatedMinutes float64              `json:"estimated_minutes"`
	TotalDueCount    int                  `json:"total_due_count"`
}

// IsDue reports whether the card is scheduled on or before today.
func IsDue(c models.CardSummary, today time.Time) bool {
	return !calendar.Day(c.NextReview).After(calendar.Day(today))
}

// ReviewMinutes is the expected time in minutes to review a card with the given ease.
func ReviewMinutes(easeFactor float64) float64 {
	switch {
	case easeFactor < 2.0:
		return 2.5
	case easeFactor < 2.5:
		return 1.5
	default:
		return 1.0
	}
}

// SelectBatch picks the cards that fit in a study session of targetMinutes.
// Due cards come first, then harder cards (lower ease). Selection is greedy and stops
// at the first card that would overflow the budget, so EstimatedMinutes never exceeds
// targetMinutes. A zero, negative or NaN budget selects nothing. cards is not modified.
func SelectBatch(cards []models.CardSummary, targetMinutes float64, today time.Time) Batch {
	if math.IsNaN(targetMinutes) {
		targetMinutes = 0
	}

	type ranked struct {
		card models.CardSummary
		due  bool
	}
	queue := make([]ranked, len(cards))
	dueCount := 0
	for i, c := range cards {
		due := IsDue(c, today)
		if due {
			dueCount++
		}
		queue[i] = ranked{card: c, due: due}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].due != queue[j].due {
			return queue[i].due
		}
		return queue[i].card.EaseFactor < queue[j].card.EaseFactor
	})

	batch := Batch{
		RecommendedCards: []models.CardSummary{},
		TotalDueCount:    dueCount,
	}
	for _, r := range queue {
		cost := ReviewMinutes(r.card.EaseFactor)
		if batch.EstimatedMinutes+cost > targetMinutes {
			break
		}
		batch.EstimatedMinutes += cost
		batch.RecommendedCards = append(batch.RecommendedCards, r.card)
	}
	return batch
}
