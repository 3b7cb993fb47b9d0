package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vytor/studyflash/internal/logger"
)

type materialRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

type materialStatusRequest struct {
	Status string `json:"status"`
}

type quizAttemptRequest struct {
	Subject string  `json:"subject"`
	Score   float64 `json:"score"`
}

type studySessionRequest struct {
	Subject string `json:"subject"`
	Minutes int    `json:"minutes"`
}

func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	materials, err := s.ActivityService.ListMaterials(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, materials)
}

func (s *Server) handleAddMaterial(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	var req materialRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	m, err := s.ActivityService.AddMaterial(r.Context(), user.ID, req.Name, req.Subject)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, m)
}

func (s *Server) handleSetMaterialStatus(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req materialStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ActivityService.SetMaterialStatus(r.Context(), user.ID, id, req.Status); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordQuizAttempt(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	var req quizAttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	a, err := s.ActivityService.RecordQuizAttempt(r.Context(), user.ID, req.Subject, req.Score)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, a)
}

func (s *Server) handleRecordStudySession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	var req studySessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.ActivityService.RecordStudySession(r.Context(), user.ID, req.Subject, req.Minutes)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, session)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	var buf bytes.Buffer
	if err := s.ExportService.Workbook(r.Context(), user.ID, &buf); err != nil {
		handleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("studyflash-%s.xlsx", user.Username)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn("failed to write export: %v", err)
	}
}
