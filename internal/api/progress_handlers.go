package api

import (
	"net/http"
)

func (s *Server) handleProgressOverview(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	overview, err := s.ProgressService.Overview(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleSubjectMastery(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	report, err := s.ProgressService.Subjects(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleVelocity(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	velocity, err := s.ProgressService.Velocity(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, velocity)
}

func (s *Server) handleConsistency(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	consistency, err := s.ProgressService.Consistency(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, consistency)
}
