package api

import (
	"net/http"
)

type registerRequest struct {
	Username string `json:"username"`
}

type telegramRequest struct {
	ChatID *int64 `json:"chat_id"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.Register(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, user)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, userFromContext(r.Context()))
}

func (s *Server) handleLinkTelegram(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	var req telegramRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.UserService.LinkTelegram(r.Context(), user.ID, req.ChatID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
