package models

import "time"

type Flashcard struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"user_id" db:"user_id"`
	MaterialID      *int64    `json:"material_id,omitempty" db:"material_id"`
	Front           string    `json:"front" db:"front_text"`
	Back            string    `json:"back" db:"back_text"`
	Topic           string    `json:"topic" db:"topic"`
	EaseFactor      float64   `json:"ease_factor" db:"ease_factor"`
	IntervalDays    int       `json:"interval_days" db:"interval_days"`
	RepetitionCount int       `json:"repetition_count" db:"repetition_count"`
	NextReview      time.Time `json:"next_review" db:"next_review"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Summary returns the scheduling view of the card.
func (f Flashcard) Summary() CardSummary {
	return CardSummary{
		ID:         f.ID,
		Topic:      f.Topic,
		EaseFactor: f.EaseFactor,
		NextReview: f.NextReview,
	}
}

// CardSummary is the minimal card shape the scheduling functions work on.
type CardSummary struct {
	ID         int64     `json:"id" db:"id"`
	Topic      string    `json:"topic" db:"topic"`
	EaseFactor float64   `json:"ease_factor" db:"ease_factor"`
	NextReview time.Time `json:"next_review" db:"next_review"`
}

type ReviewEvent struct {
	ID          int64     `json:"id" db:"id"`
	FlashcardID int64     `json:"flashcard_id" db:"flashcard_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Quality     int       `json:"quality" db:"quality"`
	ReviewedAt  time.Time `json:"reviewed_at" db:"reviewed_at"`
}

type FlashcardFilter struct {
	UserID int64
	Topic  string
	Limit  int
	Offset int
}
