package repository

import (
	"context"

	"github.com/vytor/studyflash/internal/models"
)

// FlashcardRepository handles flashcard data access
type FlashcardRepository interface {
	Insert(ctx context.Context, flashcard models.Flashcard) (int64, error)
	Get(ctx context.Context, userID, id int64) (*models.Flashcard, error)
	Update(ctx context.Context, flashcard models.Flashcard) error
	// RecordReview stores the card's new schedule and the review event atomically.
	RecordReview(ctx context.Context, flashcard models.Flashcard, event models.ReviewEvent) (int64, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
	List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error)
	Summaries(ctx context.Context, userID int64) ([]models.CardSummary, error)
}

// ReviewRepository handles review history data access
type ReviewRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.ReviewEvent, error)
	ListByFlashcard(ctx context.Context, userID, flashcardID int64) ([]models.ReviewEvent, error)
}
