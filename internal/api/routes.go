package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))
		r.Post("/users", s.handleRegisterUser)

		r.Group(func(r chi.Router) {
			r.Use(s.userMiddleware)

			r.Get("/me", s.handleCurrentUser)
			r.Put("/me/telegram", s.handleLinkTelegram)

			r.Route("/flashcards", func(r chi.Router) {
				r.Get("/", s.handleListFlashcards)
				r.Post("/", s.handleCreateFlashcard)
				r.Get("/batch", s.handleStudyBatch)
				r.Get("/schedule", s.handleSchedule)
				r.Get("/analytics", s.handleReviewAnalytics)
				r.Get("/stats", s.handleDeckStats)
				r.Put("/{id}", s.handleUpdateFlashcard)
				r.Delete("/{id}", s.handleDeleteFlashcard)
				r.Post("/{id}/review", s.handleReviewFlashcard)
			})

			r.Route("/progress", func(r chi.Router) {
				r.Get("/", s.handleProgressOverview)
				r.Get("/subjects", s.handleSubjectMastery)
				r.Get("/velocity", s.handleVelocity)
				r.Get("/consistency", s.handleConsistency)
			})

			r.Get("/materials", s.handleListMaterials)
			r.Post("/materials", s.handleAddMaterial)
			r.Post("/materials/{id}/status", s.handleSetMaterialStatus)
			r.Post("/quiz-attempts", s.handleRecordQuizAttempt)
			r.Post("/study-sessions", s.handleRecordStudySession)

			r.Get("/export", s.handleExport)
		})
	})
	return r
}
