package sqlstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/studyflash/internal/db"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type activityRepository struct {
	db *db.DB
}

// NewActivityRepository creates a new ActivityRepository implementation
func NewActivityRepository(store *db.DB) repository.ActivityRepository {
	return &activityRepository{db: store}
}

func (r *activityRepository) InsertMaterial(ctx context.Context, m models.Material) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")
	log.Debug("inserting material: user_id=%d, name=%s", m.UserID, m.Name)

	id, err := insertReturningID(ctx, r.db, r.db.Builder().
		Insert("materials").
		Columns("user_id", "name", "subject", "status").
		Values(m.UserID, m.Name, m.Subject, m.Status))
	if err != nil {
		log.Error("failed to insert material: %v", err)
	}
	return id, err
}

func (r *activityRepository) SetMaterialStatus(ctx context.Context, userID, id int64, status string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")
	log.Debug("updating material status: id=%d, status=%s", id, status)

	stmt, args, err := r.db.Builder().
		Update("materials").
		Set("status", status).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, err
	}
	ok, err := affected(r.db.ExecContext(ctx, stmt, args...))
	if err != nil {
		log.Error("failed to update material status: %v", err)
	}
	return ok, err
}

func (r *activityRepository) ListMaterials(ctx context.Context, userID int64) ([]models.Material, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")
	log.Debug("listing materials: user_id=%d", userID)

	return selectAll[models.Material](ctx, r.db, log, r.db.Builder().
		Select("id", "user_id", "name", "subject", "status", "created_at").
		From("materials").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id ASC"))
}

func (r *activityRepository) InsertQuizAttempt(ctx context.Context, a models.QuizAttempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")
	log.Debug("inserting quiz attempt: user_id=%d, subject=%s, score=%.1f", a.UserID, a.Subject, a.Score)

	id, err := insertReturningID(ctx, r.db, r.db.Builder().
		Insert("quiz_attempts").
		Columns("user_id", "subject", "score", "attempted_at").
		Values(a.UserID, a.Subject, a.Score, a.AttemptedAt))
	if err != nil {
		log.Error("failed to insert quiz attempt: %v", err)
	}
	return id, err
}

func (r *activityRepository) InsertStudySession(ctx context.Context, s models.StudySession) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")
	log.Debug("inserting study session: user_id=%d, minutes=%d", s.UserID, s.Minutes)

	id, err := insertReturningID(ctx, r.db, r.db.Builder().
		Insert("study_sessions").
		Columns("user_id", "subject", "minutes", "started_at").
		Values(s.UserID, s.Subject, s.Minutes, s.StartedAt))
	if err != nil {
		log.Error("failed to insert study session: %v", err)
	}
	return id, err
}
