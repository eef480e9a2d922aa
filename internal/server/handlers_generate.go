package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/routinegen"
	"github.com/meltforce/liftplan/internal/storage"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var up routinegen.UserProfile
	if err := decodeJSON(w, r, &up); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	routine := routinegen.Generate(up)
	s.logGeneration(r.Context(), userIDFromContext(r), routine, nil)
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handleGenerateSave(w http.ResponseWriter, r *http.Request) {
	var up routinegen.UserProfile
	if err := decodeJSON(w, r, &up); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	userID := userIDFromContext(r)
	routine := routinegen.Generate(up)
	row := models.NewGeneratedRoutine(userID, routine)
	if err := s.store.InsertRoutine(r.Context(), &row); err != nil {
		s.log.Error("saving generated routine", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.logGeneration(r.Context(), userID, routine, &row)
	writeJSON(w, http.StatusCreated, row)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, routinegen.Templates())
}

func (s *Server) handleGenerationHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	logs, err := s.store.QueryGenerationLogs(r.Context(), userIDFromContext(r), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// logGeneration records a generation request. Failures are logged and never
// fail the request. The write outlives a cancelled request context.
func (s *Server) logGeneration(ctx context.Context, userID int, routine routinegen.GeneratedRoutine, saved *models.RoutineRow) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if _, err := s.store.InsertGenerationLog(ctx, storage.NewGenerationLog(userID, routine, saved)); err != nil {
		s.log.Warn("generation log failed", "error", err)
	}
}
