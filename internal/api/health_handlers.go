package api

import (
	"net/http"
	"sort"

	"github.com/vytor/studyflash/internal/logger"
)

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady runs every readiness check. Returns 200 when all pass, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	names := make([]string, 0, len(s.ReadinessChecks))
	for name := range s.ReadinessChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := s.ReadinessChecks[name](ctx); err != nil {
			log.Warn("readiness check failed - %s: %v", name, err)
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	writeJSON(w, r, status, map[string]any{
		"ready":  status == http.StatusOK,
		"checks": checks,
	})
}
