package sqlstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/studyflash/internal/db"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type reviewRepository struct {
	db *db.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(store *db.DB) repository.ReviewRepository {
	return &reviewRepository{db: store}
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID int64) ([]models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews: user_id=%d", userID)

	return selectAll[models.ReviewEvent](ctx, r.db, log, r.reviews().
		Where(squirrel.Eq{"user_id": userID}))
}

func (r *reviewRepository) ListByFlashcard(ctx context.Context, userID, flashcardID int64) ([]models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews: user_id=%d, flashcard_id=%d", userID, flashcardID)

	return selectAll[models.ReviewEvent](ctx, r.db, log, r.reviews().
		Where(squirrel.Eq{"user_id": userID, "flashcard_id": flashcardID}))
}

func (r *reviewRepository) reviews() squirrel.SelectBuilder {
	return r.db.Builder().
		Select("id", "flashcard_id", "user_id", "quality", "reviewed_at").
		From("review_history").
		OrderBy("reviewed_at ASC", "id ASC")
}
