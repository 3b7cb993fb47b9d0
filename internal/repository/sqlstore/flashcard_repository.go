package sqlstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/studyflash/internal/db"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

var flashcardColumns = []string{
	"id", "user_id", "material_id", "front_text", "back_text", "topic",
	"ease_factor", "interval_days", "repetition_count", "next_review", "created_at",
}

type flashcardRepository struct {
	db *db.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(store *db.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: store}
}

func (r *flashcardRepository) Insert(ctx context.Context, c models.Flashcard) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting flashcard: user_id=%d, topic=%s", c.UserID, c.Topic)

	id, err := insertReturningID(ctx, r.db, r.db.Builder().
		Insert("flashcards").
		Columns("user_id", "material_id", "front_text", "back_text", "topic",
			"ease_factor", "interval_days", "repetition_count", "next_review").
		Values(c.UserID, c.MaterialID, c.Front, c.Back, c.Topic,
			c.EaseFactor, c.IntervalDays, c.RepetitionCount, c.NextReview))
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return 0, err
	}
	log.Debug("flashcard inserted: id=%d", id)
	return id, nil
}

func (r *flashcardRepository) Get(ctx context.Context, userID, id int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("fetching flashcard: id=%d, user_id=%d", id, userID)

	stmt, args, err := r.db.Builder().
		Select(flashcardColumns...).
		From("flashcards").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var c models.Flashcard
	err = r.db.GetContext(ctx, &c, stmt, args...)
	if noRows(err) {
		log.Debug("flashcard not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *flashcardRepository) Update(ctx context.Context, c models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("updating flashcard content: id=%d", c.ID)

	stmt, args, err := r.db.Builder().
		Update("flashcards").
		SetMap(map[string]any{
			"front_text":  c.Front,
			"back_text":   c.Back,
			"topic":       c.Topic,
			"material_id": c.MaterialID,
		}).
		Where(squirrel.Eq{"id": c.ID, "user_id": c.UserID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		log.Error("failed to update flashcard: %v", err)
		return err
	}
	return nil
}

func (r *flashcardRepository) RecordReview(ctx context.Context, c models.Flashcard, ev models.ReviewEvent) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("recording review: id=%d, quality=%d, interval=%d, ease=%.2f", c.ID, ev.Quality, c.IntervalDays, c.EaseFactor)

	var reviewID int64
	err := db.Tx(ctx, r.db, func(tx *sqlx.Tx) error {
		stmt, args, err := r.db.Builder().
			Update("flashcards").
			SetMap(map[string]any{
				"ease_factor":      c.EaseFactor,
				"interval_days":    c.IntervalDays,
				"repetition_count": c.RepetitionCount,
				"next_review":      c.NextReview,
			}).
			Where(squirrel.Eq{"id": c.ID, "user_id": c.UserID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return err
		}

		reviewID, err = insertReturningID(ctx, tx, r.db.Builder().
			Insert("review_history").
			Columns("flashcard_id", "user_id", "quality", "reviewed_at").
			Values(ev.FlashcardID, ev.UserID, ev.Quality, ev.ReviewedAt))
		return err
	})
	if err != nil {
		log.Error("failed to record review: %v", err)
		return 0, err
	}
	return reviewID, nil
}

func (r *flashcardRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("deleting flashcard: id=%d, user_id=%d", id, userID)

	stmt, args, err := r.db.Builder().
		Delete("flashcards").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, err
	}
	ok, err := affected(r.db.ExecContext(ctx, stmt, args...))
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
	}
	return ok, err
}

func (r *flashcardRepository) List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: user_id=%d, topic=%s", filter.UserID, filter.Topic)

	query := r.db.Builder().
		Select(flashcardColumns...).
		From("flashcards").
		Where(squirrel.Eq{"user_id": filter.UserID})
	if filter.Topic != "" {
		query = query.Where(squirrel.Eq{"topic": filter.Topic})
	}
	query = query.OrderBy("next_review ASC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
		if filter.Offset > 0 {
			query = query.Offset(uint64(filter.Offset))
		}
	}

	cards, err := selectAll[models.Flashcard](ctx, r.db, log, query)
	if err != nil {
		return nil, err
	}
	log.Debug("found %d flashcards", len(cards))
	return cards, nil
}

func (r *flashcardRepository) Summaries(ctx context.Context, userID int64) ([]models.CardSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("fetching card summaries: user_id=%d", userID)

	return selectAll[models.CardSummary](ctx, r.db, log, r.db.Builder().
		Select("id", "topic", "ease_factor", "next_review").
		From("flashcards").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id ASC"))
}
