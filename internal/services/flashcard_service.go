package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/vytor/studyflash/internal/cache"
	"github.com/vytor/studyflash/internal/calendar"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/flashcard"
	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

// FlashcardInput is the learner-editable content of a card.
type FlashcardInput struct {
	Front      string `json:"front"`
	Back       string `json:"back"`
	Topic      string `json:"topic"`
	MaterialID *int64 `json:"material_id,omitempty"`
}

// ReviewResult is a reviewed card with its new schedule and feedback for the learner.
type ReviewResult struct {
	Flashcard       models.Flashcard `json:"flashcard"`
	Message         string           `json:"message"`
	DaysUntilReview int              `json:"days_until_review"`
	Difficulty      string           `json:"difficulty"`
	StudyFrequency  string           `json:"study_frequency"`
}

// FlashcardService handles flashcard-related business logic
type FlashcardService interface {
	Create(ctx context.Context, userID int64, in FlashcardInput) (*models.Flashcard, error)
	Update(ctx context.Context, userID, id int64, in FlashcardInput) (*models.Flashcard, error)
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error)
	Review(ctx context.Context, userID, id int64, quality int) (*ReviewResult, error)
	StudyBatch(ctx context.Context, userID int64, minutes float64) (*flashcard.Batch, error)
	Schedule(ctx context.Context, userID int64, days int) (flashcard.Schedule, error)
	Analytics(ctx context.Context, userID int64, flashcardID *int64) (*flashcard.ReviewAnalytics, error)
	Stats(ctx context.Context, userID int64) (*flashcard.DeckStats, error)
}

// FlashcardConfig holds the tunables of the flashcard service.
type FlashcardConfig struct {
	BatchCacheTTL  time.Duration
	SessionMinutes float64
	ScheduleDays   int
}

type flashcardService struct {
	flashcardRepo repository.FlashcardRepository
	reviewRepo    repository.ReviewRepository
	cache         cache.Cache
	tracker       progressTracker
	cfg           FlashcardConfig
	clock         Clock
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(
	flashcardRepo repository.FlashcardRepository,
	reviewRepo repository.ReviewRepository,
	c cache.Cache,
	queue jobs.JobQueue,
	cfg FlashcardConfig,
	clock Clock,
) FlashcardService {
	if c == nil {
		c = cache.Noop{}
	}
	return &flashcardService{
		flashcardRepo: flashcardRepo,
		reviewRepo:    reviewRepo,
		cache:         c,
		tracker:       progressTracker{cache: c, queue: queue},
		cfg:           cfg,
		clock:         clock,
	}
}

func validateFlashcardInput(in FlashcardInput) error {
	if blank(in.Front) {
		return errors.NewValidationError("front", "cannot be empty")
	}
	if blank(in.Back) {
		return errors.NewValidationError("back", "cannot be empty")
	}
	return nil
}

func (s *flashcardService) Create(ctx context.Context, userID int64, in FlashcardInput) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating flashcard: user_id=%d, topic=%s", userID, in.Topic)

	if err := validateFlashcardInput(in); err != nil {
		return nil, err
	}

	now := s.clock.now()
	card := models.Flashcard{
		UserID:       userID,
		MaterialID:   in.MaterialID,
		Front:        in.Front,
		Back:         in.Back,
		Topic:        in.Topic,
		EaseFactor:   flashcard.DefaultEaseFactor,
		IntervalDays: 1,
		NextReview:   calendar.Day(now),
		CreatedAt:    now,
	}
	id, err := s.flashcardRepo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	card.ID = id

	s.tracker.changed(ctx, userID, true)
	return &card, nil
}

func (s *flashcardService) load(ctx context.Context, userID, id int64) (*models.Flashcard, error) {
	card, err := s.flashcardRepo.Get(ctx, userID, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", id)
	}
	return card, nil
}

func (s *flashcardService) Update(ctx context.Context, userID, id int64, in FlashcardInput) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating flashcard: id=%d", id)

	if err := validateFlashcardInput(in); err != nil {
		return nil, err
	}
	card, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	card.Front = in.Front
	card.Back = in.Back
	card.Topic = in.Topic
	card.MaterialID = in.MaterialID
	if err := s.flashcardRepo.Update(ctx, *card); err != nil {
		log.Error("failed to update flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.tracker.changed(ctx, userID, true)
	return card, nil
}

func (s *flashcardService) Delete(ctx context.Context, userID, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting flashcard: id=%d", id)

	ok, err := s.flashcardRepo.Delete(ctx, userID, id)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("flashcard", id)
	}

	s.tracker.changed(ctx, userID, true)
	return nil
}

func (s *flashcardService) List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing flashcards: user_id=%d", filter.UserID)

	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, errors.NewValidationError("pagination", "limit and offset cannot be negative")
	}
	cards, err := s.flashcardRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *flashcardService) Review(ctx context.Context, userID, id int64, quality int) (*ReviewResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing flashcard: flashcard_id=%d, quality=%d", id, quality)

	if quality < flashcard.MinQuality || quality > flashcard.MaxQuality {
		return nil, errors.NewValidationError("quality", "must be between 0 and 5")
	}

	card, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	updated := flashcard.ApplyReview(*card, quality, now)
	log.Debug("applied review, new interval=%d days, ease_factor=%.2f", updated.IntervalDays, updated.EaseFactor)

	_, err = s.flashcardRepo.RecordReview(ctx, updated, models.ReviewEvent{
		FlashcardID: card.ID,
		UserID:      userID,
		Quality:     quality,
		ReviewedAt:  now,
	})
	if err != nil {
		log.Error("failed to record review: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.tracker.changed(ctx, userID, true)

	return &ReviewResult{
		Flashcard:       updated,
		Message:         flashcard.ReviewMessage(quality),
		DaysUntilReview: flashcard.DaysUntilReview(updated.NextReview, now),
		Difficulty:      flashcard.DifficultyLevel(updated.EaseFactor),
		StudyFrequency:  flashcard.StudyFrequency(updated.EaseFactor, updated.RepetitionCount),
	}, nil
}

// StudyBatch selects the cards for a session of the given length. A zero length uses
// the configured session length.
func (s *flashcardService) StudyBatch(ctx context.Context, userID int64, minutes float64) (*flashcard.Batch, error) {
	log := logger.FromContext(ctx)
	if minutes == 0 {
		minutes = flashcard.DefaultSessionMinutes
		if s.cfg.SessionMinutes > 0 {
			minutes = s.cfg.SessionMinutes
		}
	}
	log.Debug("selecting study batch: user_id=%d, minutes=%.1f", userID, minutes)

	now := s.clock.now()
	key := cache.BatchKey(userID, minutes, now)
	if cached, ok, err := cache.GetJSON[flashcard.Batch](ctx, s.cache, key); err != nil {
		log.Warn("batch cache read failed: %v", err)
	} else if ok {
		return &cached, nil
	}

	cards, err := s.flashcardRepo.Summaries(ctx, userID)
	if err != nil {
		log.Error("failed to load card summaries: %v", err)
		return nil, errors.NewInternalError(err)
	}

	batch := flashcard.SelectBatch(cards, minutes, now)
	if err := cache.SetJSON(ctx, s.cache, key, batch, s.cfg.BatchCacheTTL); err != nil {
		log.Warn("batch cache write failed: %v", err)
	}
	return &batch, nil
}

func (s *flashcardService) Schedule(ctx context.Context, userID int64, days int) (flashcard.Schedule, error) {
	log := logger.FromContext(ctx)
	if days <= 0 {
		days = flashcard.DefaultScheduleDays
		if s.cfg.ScheduleDays > 0 {
			days = s.cfg.ScheduleDays
		}
	}
	log.Debug("generating schedule: user_id=%d, days=%d", userID, days)

	cards, err := s.flashcardRepo.Summaries(ctx, userID)
	if err != nil {
		log.Error("failed to load card summaries: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return flashcard.GenerateSchedule(cards, days, s.clock.now()), nil
}

// Analytics summarises the review history of one card, or of every card when
// flashcardID is nil.
func (s *flashcardService) Analytics(ctx context.Context, userID int64, flashcardID *int64) (*flashcard.ReviewAnalytics, error) {
	log := logger.FromContext(ctx)
	log.Debug("analyzing reviews: user_id=%d", userID)

	var (
		history []models.ReviewEvent
		err     error
	)
	if flashcardID != nil {
		if _, err := s.load(ctx, userID, *flashcardID); err != nil {
			return nil, err
		}
		history, err = s.reviewRepo.ListByFlashcard(ctx, userID, *flashcardID)
	} else {
		history, err = s.reviewRepo.ListByUser(ctx, userID)
	}
	if err != nil {
		log.Error("failed to load review history: %v", err)
		return nil, errors.NewInternalError(err)
	}

	analytics, err := flashcard.AnalyzeReviews(history)
	if err != nil {
		if stderrors.Is(err, flashcard.ErrInvalidShape) {
			return nil, errors.NewInvalidShapeError(err)
		}
		return nil, errors.NewInternalError(err)
	}
	return &analytics, nil
}

func (s *flashcardService) Stats(ctx context.Context, userID int64) (*flashcard.DeckStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing deck stats: user_id=%d", userID)

	cards, err := s.flashcardRepo.List(ctx, models.FlashcardFilter{UserID: userID})
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	stats := flashcard.Summarize(cards, s.clock.now())
	return &stats, nil
}
