package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/studyflash/internal/cache"
	"github.com/vytor/studyflash/internal/db"
	"github.com/vytor/studyflash/internal/repository/sqlstore"
	"github.com/vytor/studyflash/internal/services"
	"github.com/vytor/studyflash/internal/testutil"
	"github.com/vytor/studyflash/internal/testutil/mocks"
)

var now = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

type APISuite struct {
	suite.Suite
	db      *db.DB
	queue   *mocks.MockJobQueue
	handler http.Handler
	userID  int64
}

func (s *APISuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.queue = new(mocks.MockJobQueue)
	s.queue.On("EnqueueSnapshot", mock.Anything).Return(nil).Maybe()

	clock := services.Clock(func() time.Time { return now })
	store := cache.Noop{}
	flashcards := sqlstore.NewFlashcardRepository(s.db)
	reviews := sqlstore.NewReviewRepository(s.db)

	srv := &Server{
		UserService: services.NewUserService(sqlstore.NewUserRepository(s.db)),
		FlashcardService: services.NewFlashcardService(flashcards, reviews, store, s.queue, services.FlashcardConfig{
			SessionMinutes: 20,
			ScheduleDays:   7,
		}, clock),
		ProgressService: services.NewProgressService(sqlstore.NewStatsRepository(s.db), store, time.Minute, clock),
		ActivityService: services.NewActivityService(sqlstore.NewActivityRepository(s.db), store, s.queue, clock),
		ExportService:   services.NewExportService(flashcards, reviews, clock),
		ReadinessChecks: map[string]HealthCheck{"database": s.db.Ping},
	}
	s.handler = srv.Routes()
	s.userID = testutil.CreateUser(s.T(), s.db, "ada")
}

func (s *APISuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *APISuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(userIDHeader, strconv.FormatInt(s.userID, 10))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) decode(rec *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func (s *APISuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body struct {
		Error errorBody `json:"error"`
	}
	s.decode(rec, &body)
	return body.Error.Code
}

func (s *APISuite) createCard(front, topic string) int64 {
	rec := s.do(http.MethodPost, "/api/flashcards", map[string]string{
		"front": front, "back": "answer", "topic": topic,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var card struct {
		ID int64 `json:"id"`
	}
	s.decode(rec, &card)
	return card.ID
}

func (s *APISuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
	s.NotEmpty(rec.Header().Get("X-Request-ID"))
}

func (s *APISuite) TestReady() {
	rec := s.do(http.MethodGet, "/ready", nil)
	s.Equal(http.StatusOK, rec.Code)

	srv := &Server{ReadinessChecks: map[string]HealthCheck{
		"cache": func(context.Context) error { return fmt.Errorf("connection refused") },
	}}
	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	s.Equal(http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Ready  bool              `json:"ready"`
		Checks map[string]string `json:"checks"`
	}
	s.decode(rec, &body)
	s.False(body.Ready)
	s.Equal("connection refused", body.Checks["cache"])
}

func (s *APISuite) TestUserHeader() {
	req := httptest.NewRequest(http.MethodGet, "/api/flashcards", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("UNAUTHORIZED", s.errorCode(rec))

	s.userID = 999
	rec = s.do(http.MethodGet, "/api/flashcards", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *APISuite) TestRegisterUser() {
	rec := s.do(http.MethodPost, "/api/users", map[string]string{"username": "  grace "})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var user struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	s.decode(rec, &user)
	s.Equal("grace", user.Username)
	s.Positive(user.ID)

	rec = s.do(http.MethodPost, "/api/users", map[string]string{"username": ""})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", s.errorCode(rec))

	rec = s.do(http.MethodPost, "/api/users", map[string]any{"username": "x", "admin": true})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestLinkTelegram() {
	rec := s.do(http.MethodPut, "/api/me/telegram", map[string]int64{"chat_id": 4242})
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/me", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var user struct {
		TelegramChatID *int64 `json:"telegram_chat_id"`
	}
	s.decode(rec, &user)
	s.Require().NotNil(user.TelegramChatID)
	s.Equal(int64(4242), *user.TelegramChatID)
}

func (s *APISuite) TestFlashcardLifecycle() {
	id := s.createCard("What is 2+2?", "math")
	s.createCard("Capital of France?", "geography")

	rec := s.do(http.MethodGet, "/api/flashcards?topic=math", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var cards []map[string]any
	s.decode(rec, &cards)
	s.Len(cards, 1)

	rec = s.do(http.MethodPut, fmt.Sprintf("/api/flashcards/%d", id), map[string]string{
		"front": "What is 3+3?", "back": "6", "topic": "math",
	})
	s.Require().Equal(http.StatusOK, rec.Code)
	var updated struct {
		Front string `json:"front"`
	}
	s.decode(rec, &updated)
	s.Equal("What is 3+3?", updated.Front)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/flashcards/%d", id), nil)
	s.Equal(http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/flashcards/%d", id), nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("NOT_FOUND", s.errorCode(rec))

	rec = s.do(http.MethodDelete, "/api/flashcards/abc", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestReview() {
	id := s.createCard("What is 2+2?", "math")
	path := fmt.Sprintf("/api/flashcards/%d/review", id)

	rec := s.do(http.MethodPost, path, map[string]int{"quality": 4})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		Flashcard struct {
			IntervalDays    int `json:"interval_days"`
			RepetitionCount int `json:"repetition_count"`
		} `json:"flashcard"`
		DaysUntilReview int    `json:"days_until_review"`
		Message         string `json:"message"`
	}
	s.decode(rec, &result)
	s.Equal(1, result.Flashcard.IntervalDays)
	s.Equal(1, result.Flashcard.RepetitionCount)
	s.Equal(1, result.DaysUntilReview)
	s.Equal("Great work! You know this well.", result.Message)
	s.queue.AssertCalled(s.T(), "EnqueueSnapshot", s.userID)

	rec = s.do(http.MethodPost, path, map[string]any{})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", s.errorCode(rec))

	rec = s.do(http.MethodPost, path, map[string]int{"quality": 6})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/flashcards/9999/review", map[string]int{"quality": 3})
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestStudyViews() {
	s.createCard("q1", "math")
	s.createCard("q2", "math")

	rec := s.do(http.MethodGet, "/api/flashcards/batch?minutes=10", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var batch map[string]any
	s.decode(rec, &batch)
	s.NotEmpty(batch)

	rec = s.do(http.MethodGet, "/api/flashcards/batch?minutes=ten", nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/flashcards/schedule?days=3", nil)
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/flashcards/analytics", nil)
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/flashcards/analytics?flashcard_id=9999", nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/flashcards/stats", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var stats struct {
		TotalFlashcards int `json:"total_flashcards"`
		NewFlashcards   int `json:"new_flashcards"`
		DueFlashcards   int `json:"due_flashcards"`
	}
	s.decode(rec, &stats)
	s.Equal(2, stats.TotalFlashcards)
	s.Equal(2, stats.NewFlashcards)
	s.Equal(2, stats.DueFlashcards)
}

func (s *APISuite) TestActivityAndProgress() {
	rec := s.do(http.MethodPost, "/api/materials", map[string]string{"name": "Algebra notes", "subject": "math"})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var material struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	s.decode(rec, &material)
	s.Equal("pending", material.Status)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/materials/%d/status", material.ID), map[string]string{"status": "completed"})
	s.Equal(http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodPost, fmt.Sprintf("/api/materials/%d/status", material.ID), map[string]string{"status": "archived"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/materials", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var materials []map[string]any
	s.decode(rec, &materials)
	s.Len(materials, 1)

	rec = s.do(http.MethodPost, "/api/quiz-attempts", map[string]any{"subject": "math", "score": 80})
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, "/api/quiz-attempts", map[string]any{"subject": "math", "score": 120})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/study-sessions", map[string]any{"subject": "math", "minutes": 30})
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, "/api/study-sessions", map[string]any{"subject": "math", "minutes": 0})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/progress", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var overview struct {
		OverallProgress int    `json:"overall_progress"`
		Level           string `json:"level"`
	}
	s.decode(rec, &overview)
	s.Positive(overview.OverallProgress)
	s.NotEmpty(overview.Level)

	for _, path := range []string{"/api/progress/subjects", "/api/progress/velocity", "/api/progress/consistency"} {
		rec = s.do(http.MethodGet, path, nil)
		s.Equal(http.StatusOK, rec.Code, path+": "+rec.Body.String())
	}
}

func (s *APISuite) TestExport() {
	s.createCard("q1", "math")

	rec := s.do(http.MethodGet, "/api/export", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(xlsxContentType, rec.Header().Get("Content-Type"))
	s.Contains(rec.Header().Get("Content-Disposition"), `filename="studyflash-ada.xlsx"`)
	s.True(bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
