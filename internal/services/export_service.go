package services

import (
	"context"
	"io"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/export"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

// ExportService writes a learner's deck and review history as a spreadsheet
type ExportService interface {
	Workbook(ctx context.Context, userID int64, w io.Writer) error
}

type exportService struct {
	flashcardRepo repository.FlashcardRepository
	reviewRepo    repository.ReviewRepository
	clock         Clock
}

// NewExportService creates a new ExportService
func NewExportService(flashcardRepo repository.FlashcardRepository, reviewRepo repository.ReviewRepository, clock Clock) ExportService {
	return &exportService{flashcardRepo: flashcardRepo, reviewRepo: reviewRepo, clock: clock}
}

func (s *exportService) Workbook(ctx context.Context, userID int64, w io.Writer) error {
	log := logger.FromContext(ctx)
	log.Debug("exporting workbook: user_id=%d", userID)

	cards, err := s.flashcardRepo.List(ctx, models.FlashcardFilter{UserID: userID})
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return errors.NewInternalError(err)
	}
	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return errors.NewInternalError(err)
	}

	if err := export.Workbook(w, cards, reviews, s.clock.now()); err != nil {
		log.Error("failed to write workbook: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
