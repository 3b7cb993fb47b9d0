package flashcard

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/studyflash/internal/calendar"
	"github.com/vytor/studyflash/internal/models"
)

// MatureIntervalDays is the review interval from which a card counts as mastered.
const MatureIntervalDays = 21

// DifficultyLevel classifies a card by its ease factor.
func DifficultyLevel(easeFactor float64) string {
	switch {
	case easeFactor >= 2.8:
		return "easy"
	case easeFactor >= 2.5:
		return "medium"
	case easeFactor >= 2.0:
		return "hard"
	case easeFactor >= 1.5:
		return "very_hard"
	default:
		return "extremely_hard"
	}
}

// StudyFrequency suggests how often a card should be studied.
func StudyFrequency(easeFactor float64, repetitionCount int) string {
	switch {
	case repetitionCount < 3:
		return "Review daily until familiar"
	case easeFactor < 2.0:
		return "Focus more time on this topic"
	case easeFactor >= 2.8:
		return "Well mastered - review occasionally"
	default:
		return "Regular review recommended"
	}
}

var reviewMessages = map[int]string{
	0: "Don't worry, keep practicing!",
	1: "You'll get it next time!",
	2: "Good effort, review this topic again.",
	3: "Good job! You're improving.",
	4: "Great work! You know this well.",
	5: "Perfect! You've mastered this concept.",
}

// ReviewMessage is the feedback shown after a review of the given quality.
func ReviewMessage(quality int) string {
	if msg, ok := reviewMessages[quality]; ok {
		return msg
	}
	return "Keep studying!"
}

// DaysUntilReview is the whole number of days from today until next, never negative.
func DaysUntilReview(next, today time.Time) int {
	days := math.Ceil(calendar.DaysBetween(calendar.Day(today), next))
	if days < 0 {
		return 0
	}
	return int(days)
}

// TopicMastery grades a topic from its average ease and the share of its cards due.
func TopicMastery(avgEase float64, due, total int) string {
	if total <= 0 {
		total = 1
	}
	dueRatio := float64(due) / float64(total)
	switch {
	case avgEase >= 3.0 && dueRatio < 0.1:
		return "Master"
	case avgEase >= 2.8 && dueRatio < 0.2:
		return "Advanced"
	case avgEase >= 2.5 && dueRatio < 0.4:
		return "Intermediate"
	case avgEase >= 2.0:
		return "Beginner"
	default:
		return "Learning"
	}
}

// StudyProgress is the rounded percentage of cards reviewed at least once.
func StudyProgress(total, newCards int) int {
	if total <= 0 {
		total = 1
	}
	return int(math.Floor(float64(total-newCards)/float64(total)*100 + 0.5))
}

type TopicSummary struct {
	Topic        string  `json:"topic"`
	TotalCards   int     `json:"total_cards"`
	DueCards     int     `json:"due_cards"`
	AverageEase  float64 `json:"average_ease"`
	MasteryLevel string  `json:"mastery_level"`
}

type DeckStats struct {
	TotalFlashcards   int            `json:"total_flashcards"`
	DueFlashcards     int            `json:"due_flashcards"`
	NewFlashcards     int            `json:"new_flashcards"`
	AverageEaseFactor float64        `json:"average_ease_factor"`
	StudyProgress     int            `json:"study_progress"`
	Topics            []TopicSummary `json:"topics"`
}

// SummarizeTopics groups cards by topic, sorted by topic name.
func SummarizeTopics(cards []models.Flashcard, today time.Time) []TopicSummary {
	type acc struct {
		total, due int
		ease       float64
	}
	byTopic := make(map[string]*acc)
	for _, c := range cards {
		a, ok := byTopic[c.Topic]
		if !ok {
			a = &acc{}
			byTopic[c.Topic] = a
		}
		a.total++
		a.ease += c.EaseFactor
		if IsDue(c.Summary(), today) {
			a.due++
		}
	}

	out := make([]TopicSummary, 0, len(byTopic))
	for topic, a := range byTopic {
		avg := a.ease / float64(a.total)
		out = append(out, TopicSummary{
			Topic:        topic,
			TotalCards:   a.total,
			DueCards:     a.due,
			AverageEase:  round2(avg),
			MasteryLevel: TopicMastery(avg, a.due, a.total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

// Summarize computes deck level statistics for a user's cards.
func Summarize(cards []models.Flashcard, today time.Time) DeckStats {
	stats := DeckStats{
		TotalFlashcards:   len(cards),
		AverageEaseFactor: DefaultEaseFactor,
		Topics:            SummarizeTopics(cards, today),
	}
	var ease float64
	for _, c := range cards {
		ease += c.EaseFactor
		if c.RepetitionCount == 0 {
			stats.NewFlashcards++
		}
		if IsDue(c.Summary(), today) {
			stats.DueFlashcards++
		}
	}
	if len(cards) > 0 {
		stats.AverageEaseFactor = round2(ease / float64(len(cards)))
	}
	stats.StudyProgress = StudyProgress(stats.TotalFlashcards, stats.NewFlashcards)
	return stats
}
