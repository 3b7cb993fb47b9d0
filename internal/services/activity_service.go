package services

import (
	"context"
	"math"

	"github.com/vytor/studyflash/internal/cache"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

// ActivityService records study materials, quiz attempts and study sessions
type ActivityService interface {
	AddMaterial(ctx context.Context, userID int64, name, subject string) (*models.Material, error)
	SetMaterialStatus(ctx context.Context, userID, id int64, status string) error
	ListMaterials(ctx context.Context, userID int64) ([]models.Material, error)
	RecordQuizAttempt(ctx context.Context, userID int64, subject string, score float64) (*models.QuizAttempt, error)
	RecordStudySession(ctx context.Context, userID int64, subject string, minutes int) (*models.StudySession, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
	tracker      progressTracker
	clock        Clock
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo repository.ActivityRepository, c cache.Cache, queue jobs.JobQueue, clock Clock) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		tracker:      progressTracker{cache: c, queue: queue},
		clock:        clock,
	}
}

func (s *activityService) AddMaterial(ctx context.Context, userID int64, name, subject string) (*models.Material, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding material: user_id=%d, name=%s", userID, name)

	if blank(name) {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	m := models.Material{
		UserID:    userID,
		Name:      name,
		Subject:   subject,
		Status:    models.MaterialPending,
		CreatedAt: s.clock.now(),
	}
	id, err := s.activityRepo.InsertMaterial(ctx, m)
	if err != nil {
		log.Error("failed to insert material: %v", err)
		return nil, errors.NewInternalError(err)
	}
	m.ID = id

	s.tracker.changed(ctx, userID, false)
	return &m, nil
}

func (s *activityService) SetMaterialStatus(ctx context.Context, userID, id int64, status string) error {
	log := logger.FromContext(ctx)
	log.Debug("setting material status: id=%d, status=%s", id, status)

	if !models.ValidMaterialStatus(status) {
		return errors.NewValidationError("status", "must be one of pending, processing, completed, failed")
	}

	ok, err := s.activityRepo.SetMaterialStatus(ctx, userID, id, status)
	if err != nil {
		log.Error("failed to update material status: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("material", id)
	}

	s.tracker.changed(ctx, userID, false)
	return nil
}

func (s *activityService) ListMaterials(ctx context.Context, userID int64) ([]models.Material, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing materials: user_id=%d", userID)

	materials, err := s.activityRepo.ListMaterials(ctx, userID)
	if err != nil {
		log.Error("failed to list materials: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return materials, nil
}

func (s *activityService) RecordQuizAttempt(ctx context.Context, userID int64, subject string, score float64) (*models.QuizAttempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording quiz attempt: user_id=%d, subject=%s, score=%.1f", userID, subject, score)

	if blank(subject) {
		return nil, errors.NewValidationError("subject", "cannot be empty")
	}
	if math.IsNaN(score) || score < 0 || score > 100 {
		return nil, errors.NewValidationError("score", "must be between 0 and 100")
	}

	a := models.QuizAttempt{
		UserID:      userID,
		Subject:     subject,
		Score:       score,
		AttemptedAt: s.clock.now(),
	}
	id, err := s.activityRepo.InsertQuizAttempt(ctx, a)
	if err != nil {
		log.Error("failed to insert quiz attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	a.ID = id

	s.tracker.changed(ctx, userID, false)
	return &a, nil
}

func (s *activityService) RecordStudySession(ctx context.Context, userID int64, subject string, minutes int) (*models.StudySession, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording study session: user_id=%d, minutes=%d", userID, minutes)

	if minutes <= 0 {
		return nil, errors.NewValidationError("minutes", "must be positive")
	}

	session := models.StudySession{
		UserID:    userID,
		Subject:   subject,
		Minutes:   minutes,
		StartedAt: s.clock.now(),
	}
	id, err := s.activityRepo.InsertStudySession(ctx, session)
	if err != nil {
		log.Error("failed to insert study session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	session.ID = id

	s.tracker.changed(ctx, userID, false)
	return &session, nil
}
