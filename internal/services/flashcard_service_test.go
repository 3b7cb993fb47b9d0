package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/cache"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/flashcard"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/testutil/mocks"
)

var (
	now   = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	clock = Clock(func() time.Time { return now })
)

type flashcardFixture struct {
	cards   *mocks.MockFlashcardRepository
	reviews *mocks.MockReviewRepository
	queue   *mocks.MockJobQueue
	svc     FlashcardService
}

func newFlashcardFixture(t *testing.T, c cache.Cache) *flashcardFixture {
	t.Helper()
	f := &flashcardFixture{
		cards:   new(mocks.MockFlashcardRepository),
		reviews: new(mocks.MockReviewRepository),
		queue:   new(mocks.MockJobQueue),
	}
	f.queue.On("EnqueueSnapshot", mock.Anything).Return(nil).Maybe()
	f.svc = NewFlashcardService(f.cards, f.reviews, c, f.queue, FlashcardConfig{
		BatchCacheTTL:  15 * time.Minute,
		SessionMinutes: 20,
		ScheduleDays:   7,
	}, clock)
	return f
}

func newMiniCache(t *testing.T) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.NewRedis("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	appErr, ok := errors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestFlashcardService_Create(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	f.cards.On("Insert", mock.Anything, mock.MatchedBy(func(c models.Flashcard) bool {
		return c.UserID == 1 && c.EaseFactor == 2.5 && c.IntervalDays == 1 && c.RepetitionCount == 0 &&
			c.NextReview.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	})).Return(int64(11), nil)

	card, err := f.svc.Create(context.Background(), 1, FlashcardInput{Front: "Q", Back: "A", Topic: "math"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), card.ID)
	f.cards.AssertExpectations(t)
	f.queue.AssertCalled(t, "EnqueueSnapshot", int64(1))
}

func TestFlashcardService_Create_Validation(t *testing.T) {
	f := newFlashcardFixture(t, nil)

	_, err := f.svc.Create(context.Background(), 1, FlashcardInput{Front: "  ", Back: "A"})
	assertAppError(t, err, errors.ErrCodeValidation)
	_, err = f.svc.Create(context.Background(), 1, FlashcardInput{Front: "Q"})
	assertAppError(t, err, errors.ErrCodeValidation)
	f.cards.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestFlashcardService_Review(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	card := &models.Flashcard{ID: 3, UserID: 1, EaseFactor: 2.5, IntervalDays: 6, RepetitionCount: 2, NextReview: now}
	f.cards.On("Get", mock.Anything, int64(1), int64(3)).Return(card, nil)
	f.cards.On("RecordReview", mock.Anything,
		mock.MatchedBy(func(c models.Flashcard) bool {
			return c.IntervalDays == 16 && c.EaseFactor == 2.6 && c.RepetitionCount == 3
		}),
		models.ReviewEvent{FlashcardID: 3, UserID: 1, Quality: 5, ReviewedAt: now},
	).Return(int64(99), nil)

	res, err := f.svc.Review(context.Background(), 1, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 16, res.Flashcard.IntervalDays)
	assert.Equal(t, 16, res.DaysUntilReview)
	assert.Equal(t, "Perfect! You've mastered this concept.", res.Message)
	assert.Equal(t, "medium", res.Difficulty)
	f.cards.AssertExpectations(t)
}

func TestFlashcardService_Review_InvalidQuality(t *testing.T) {
	f := newFlashcardFixture(t, nil)

	for _, q := range []int{-1, 6} {
		_, err := f.svc.Review(context.Background(), 1, 3, q)
		assertAppError(t, err, errors.ErrCodeValidation)
	}
	f.cards.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlashcardService_Review_NotFound(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	f.cards.On("Get", mock.Anything, int64(1), int64(3)).Return(nil, nil)

	_, err := f.svc.Review(context.Background(), 1, 3, 4)
	assertAppError(t, err, errors.ErrCodeNotFound)
}

func TestFlashcardService_Review_RepositoryError(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	f.cards.On("Get", mock.Anything, int64(1), int64(3)).Return(&models.Flashcard{ID: 3, UserID: 1, EaseFactor: 2.5, IntervalDays: 1}, nil)
	f.cards.On("RecordReview", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	_, err := f.svc.Review(context.Background(), 1, 3, 4)
	assertAppError(t, err, errors.ErrCodeInternal)
	f.queue.AssertNotCalled(t, "EnqueueSnapshot", mock.Anything)
}

func TestFlashcardService_StudyBatch_CachedUntilReview(t *testing.T) {
	c, mr := newMiniCache(t)
	f := newFlashcardFixture(t, c)
	summaries := []models.CardSummary{
		{ID: 1, EaseFactor: 2.5, NextReview: now.AddDate(0, 0, -1)},
		{ID: 2, EaseFactor: 1.8, NextReview: now},
		{ID: 3, EaseFactor: 2.5, NextReview: now.AddDate(0, 0, 4)},
	}
	f.cards.On("Summaries", mock.Anything, int64(1)).Return(summaries, nil).Once()

	batch, err := f.svc.StudyBatch(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.TotalDueCount)
	assert.Equal(t, int64(2), batch.RecommendedCards[0].ID)
	assert.True(t, mr.Exists(cache.BatchKey(1, 20, now)))

	again, err := f.svc.StudyBatch(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, batch.RecommendedCards, again.RecommendedCards)
	f.cards.AssertNumberOfCalls(t, "Summaries", 1)

	f.cards.On("Delete", mock.Anything, int64(1), int64(3)).Return(true, nil)
	require.NoError(t, f.svc.Delete(context.Background(), 1, 3))
	assert.False(t, mr.Exists(cache.BatchKey(1, 20, now)))
}

func TestFlashcardService_StudyBatch_NewDayRecomputes(t *testing.T) {
	c, _ := newMiniCache(t)
	cards := new(mocks.MockFlashcardRepository)
	queue := new(mocks.MockJobQueue)
	lateEvening := time.Date(2024, 3, 10, 23, 55, 0, 0, time.UTC)
	current := lateEvening
	svc := NewFlashcardService(cards, new(mocks.MockReviewRepository), c, queue, FlashcardConfig{
		BatchCacheTTL:  15 * time.Minute,
		SessionMinutes: 20,
	}, Clock(func() time.Time { return current }))
	cards.On("Summaries", mock.Anything, int64(1)).Return([]models.CardSummary{
		{ID: 1, EaseFactor: 2.5, NextReview: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
	}, nil)

	evening, err := svc.StudyBatch(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, evening.TotalDueCount)

	current = lateEvening.Add(10 * time.Minute)
	morning, err := svc.StudyBatch(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, morning.TotalDueCount)
	cards.AssertNumberOfCalls(t, "Summaries", 2)
}

func TestFlashcardService_Schedule(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	f.cards.On("Summaries", mock.Anything, int64(1)).Return([]models.CardSummary{
		{ID: 1, NextReview: now.AddDate(0, 0, 2)},
	}, nil)

	schedule, err := f.svc.Schedule(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, schedule.Days(), 7)
	assert.Len(t, schedule["2024-03-12"], 1)
}

func TestFlashcardService_DefaultsWithoutConfig(t *testing.T) {
	cards := new(mocks.MockFlashcardRepository)
	svc := NewFlashcardService(cards, new(mocks.MockReviewRepository), nil, new(mocks.MockJobQueue), FlashcardConfig{}, clock)
	cards.On("Summaries", mock.Anything, int64(1)).Return([]models.CardSummary{
		{ID: 1, EaseFactor: 2.5, NextReview: now},
	}, nil)

	batch, err := svc.StudyBatch(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, batch.RecommendedCards, 1)

	schedule, err := svc.Schedule(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, schedule.Days(), flashcard.DefaultScheduleDays)
}

func TestFlashcardService_Analytics(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	history := []models.ReviewEvent{
		{Quality: 2, ReviewedAt: now.AddDate(0, 0, -3)},
		{Quality: 3, ReviewedAt: now.AddDate(0, 0, -2)},
		{Quality: 4, ReviewedAt: now.AddDate(0, 0, -1)},
		{Quality: 5, ReviewedAt: now},
	}
	f.reviews.On("ListByUser", mock.Anything, int64(1)).Return(history, nil)

	a, err := f.svc.Analytics(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, a.TotalReviews)
	assert.Equal(t, flashcard.TrendImproving, a.ImprovementTrend)
}

func TestFlashcardService_Analytics_SingleCard(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	id := int64(3)
	f.cards.On("Get", mock.Anything, int64(1), id).Return(&models.Flashcard{ID: id, UserID: 1}, nil)
	f.reviews.On("ListByFlashcard", mock.Anything, int64(1), id).Return([]models.ReviewEvent{}, nil)

	a, err := f.svc.Analytics(context.Background(), 1, &id)
	require.NoError(t, err)
	assert.Equal(t, flashcard.TrendInsufficientData, a.ImprovementTrend)
}

func TestFlashcardService_Analytics_InvalidShape(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	f.reviews.On("ListByUser", mock.Anything, int64(1)).Return([]models.ReviewEvent{{Quality: 3}}, nil)

	_, err := f.svc.Analytics(context.Background(), 1, nil)
	assertAppError(t, err, errors.ErrCodeInvalidShape)
}

func TestFlashcardService_Stats(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	f.cards.On("List", mock.Anything, models.FlashcardFilter{UserID: 1}).Return([]models.Flashcard{
		{ID: 1, Topic: "math", EaseFactor: 2.5, NextReview: now},
		{ID: 2, Topic: "math", EaseFactor: 2.7, RepetitionCount: 3, IntervalDays: 21, NextReview: now.AddDate(0, 0, 9)},
	}, nil)

	stats, err := f.svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalFlashcards)
	assert.Equal(t, 1, stats.DueFlashcards)
	assert.Equal(t, 1, stats.NewFlashcards)
	assert.Equal(t, 50, stats.StudyProgress)
	assert.Equal(t, 2.6, stats.AverageEaseFactor)
}

func TestFlashcardService_Delete_NotFound(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	f.cards.On("Delete", mock.Anything, int64(1), int64(8)).Return(false, nil)

	err := f.svc.Delete(context.Background(), 1, 8)
	assertAppError(t, err, errors.ErrCodeNotFound)
}

func TestFlashcardService_Update(t *testing.T) {
	f := newFlashcardFixture(t, nil)
	f.cards.On("Get", mock.Anything, int64(1), int64(4)).Return(&models.Flashcard{ID: 4, UserID: 1, Front: "old", Back: "old", EaseFactor: 2.1}, nil)
	f.cards.On("Update", mock.Anything, mock.MatchedBy(func(c models.Flashcard) bool {
		return c.Front == "new" && c.EaseFactor == 2.1
	})).Return(nil)

	card, err := f.svc.Update(context.Background(), 1, 4, FlashcardInput{Front: "new", Back: "back"})
	require.NoError(t, err)
	assert.Equal(t, "new", card.Front)
	f.cards.AssertExpectations(t)
}
