package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/models"
)

// MockFlashcardRepository is a mock implementation of repository.FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) Insert(ctx context.Context, flashcard models.Flashcard) (int64, error) {
	args := m.Called(ctx, flashcard)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlashcardRepository) Get(ctx context.Context, userID, id int64) (*models.Flashcard, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) Update(ctx context.Context, flashcard models.Flashcard) error {
	args := m.Called(ctx, flashcard)
	return args.Error(0)
}

func (m *MockFlashcardRepository) RecordReview(ctx context.Context, flashcard models.Flashcard, event models.ReviewEvent) (int64, error) {
	args := m.Called(ctx, flashcard, event)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlashcardRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlashcardRepository) List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) Summaries(ctx context.Context, userID int64) ([]models.CardSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardSummary), args.Error(1)
}

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ListByUser(ctx context.Context, userID int64) ([]models.ReviewEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewEvent), args.Error(1)
}

func (m *MockReviewRepository) ListByFlashcard(ctx context.Context, userID, flashcardID int64) ([]models.ReviewEvent, error) {
	args := m.Called(ctx, userID, flashcardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewEvent), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetTelegramChat(ctx context.Context, id int64, chatID *int64) error {
	args := m.Called(ctx, id, chatID)
	return args.Error(0)
}

// MockActivityRepository is a mock implementation of repository.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) InsertMaterial(ctx context.Context, material models.Material) (int64, error) {
	args := m.Called(ctx, material)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) SetMaterialStatus(ctx context.Context, userID, id int64, status string) (bool, error) {
	args := m.Called(ctx, userID, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockActivityRepository) ListMaterials(ctx context.Context, userID int64) ([]models.Material, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Material), args.Error(1)
}

func (m *MockActivityRepository) InsertQuizAttempt(ctx context.Context, attempt models.QuizAttempt) (int64, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) InsertStudySession(ctx context.Context, session models.StudySession) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

func (m *MockStatsRepository) SubjectStats(ctx context.Context, userID int64) ([]models.SubjectStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubjectStats), args.Error(1)
}

func (m *MockStatsRepository) ActivityTimes(ctx context.Context, userID int64) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockStatsRepository) ProgressHistory(ctx context.Context, userID int64) ([]models.ProgressSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressSnapshot), args.Error(1)
}

func (m *MockStatsRepository) UpsertSnapshot(ctx context.Context, userID int64, snapshot models.ProgressSnapshot) error {
	args := m.Called(ctx, userID, snapshot)
	return args.Error(0)
}
