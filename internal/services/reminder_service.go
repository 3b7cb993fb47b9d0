package services

import (
	"context"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/flashcard"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/notify"
	"github.com/vytor/studyflash/internal/repository"
)

// ReminderService tells learners with a linked chat how many cards are waiting
type ReminderService interface {
	SendReminder(ctx context.Context, userID int64) error
}

type reminderService struct {
	userRepo      repository.UserRepository
	flashcardRepo repository.FlashcardRepository
	notifier      notify.Notifier
	clock         Clock
}

// NewReminderService creates a new ReminderService
func NewReminderService(userRepo repository.UserRepository, flashcardRepo repository.FlashcardRepository, notifier notify.Notifier, clock Clock) ReminderService {
	return &reminderService{
		userRepo:      userRepo,
		flashcardRepo: flashcardRepo,
		notifier:      notifier,
		clock:         clock,
	}
}

// SendReminder is a no-op for learners without a chat or without due cards.
func (s *reminderService) SendReminder(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return errors.NewInternalError(err)
	}
	if user == nil || user.TelegramChatID == nil {
		log.Debug("no reminder channel for user %d", userID)
		return nil
	}

	cards, err := s.flashcardRepo.Summaries(ctx, userID)
	if err != nil {
		log.Error("failed to load card summaries: %v", err)
		return errors.NewInternalError(err)
	}
	today := s.clock.now()
	due := 0
	for _, c := range cards {
		if flashcard.IsDue(c, today) {
			due++
		}
	}
	if due == 0 {
		log.Debug("no due cards for user %d", userID)
		return nil
	}

	return s.notifier.Notify(ctx, *user.TelegramChatID, notify.ReminderText(due))
}
