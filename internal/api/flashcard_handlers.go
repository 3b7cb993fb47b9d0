package api

import (
	"net/http"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/services"
)

type reviewRequest struct {
	Quality *int `json:"quality"`
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.FlashcardService.List(r.Context(), models.FlashcardFilter{
		UserID: user.ID,
		Topic:  r.URL.Query().Get("topic"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	var in services.FlashcardInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.FlashcardService.Create(r.Context(), user.ID, in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleUpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var in services.FlashcardInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.FlashcardService.Update(r.Context(), user.ID, id, in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.FlashcardService.Delete(r.Context(), user.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Quality == nil {
		handleError(w, r, errors.NewValidationError("quality", "is required"))
		return
	}

	result, err := s.FlashcardService.Review(r.Context(), user.ID, id, *req.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("flashcard reviewed: id=%d, quality=%d, next_interval=%d", id, *req.Quality, result.Flashcard.IntervalDays)
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleStudyBatch(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	minutes, err := queryFloat(r, "minutes")
	if err != nil {
		handleError(w, r, err)
		return
	}

	batch, err := s.FlashcardService.StudyBatch(r.Context(), user.ID, minutes)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, batch)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	days, err := queryInt(r, "days")
	if err != nil {
		handleError(w, r, err)
		return
	}

	schedule, err := s.FlashcardService.Schedule(r.Context(), user.ID, days)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, schedule)
}

func (s *Server) handleReviewAnalytics(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var cardID *int64
	if r.URL.Query().Get("flashcard_id") != "" {
		id, err := queryInt(r, "flashcard_id")
		if err != nil {
			handleError(w, r, err)
			return
		}
		v := int64(id)
		cardID = &v
	}

	analytics, err := s.FlashcardService.Analytics(r.Context(), user.ID, cardID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, analytics)
}

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	stats, err := s.FlashcardService.Stats(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
