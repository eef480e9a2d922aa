package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/liftplan/internal/coach"
)

// parseDateParam reads an optional date or RFC3339 query parameter. A
// missing parameter yields the zero time, which the storage layer treats as
// an open bound.
func parseDateParam(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %q", name, v)
	}
	return t, nil
}

// parseDateRange reads the optional start and end parameters. Both ends are
// inclusive calendar days.
func parseDateRange(r *http.Request) (start, end time.Time, err error) {
	if start, err = parseDateParam(r, "start"); err != nil {
		return
	}
	end, err = parseDateParam(r, "end")
	return
}

func (s *Server) handleVolume(bucket string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vols, err := s.store.VolumeByPeriod(r.Context(), userIDFromContext(r), bucket)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, vols)
	}
}

func (s *Server) handleMuscleVolume(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	vols, err := s.store.MuscleVolume(r.Context(), userIDFromContext(r), start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, vols)
}

func (s *Server) handlePRTrend(w http.ResponseWriter, r *http.Request) {
	exercise := strings.TrimSpace(r.URL.Query().Get("exercise"))
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise is required"})
		return
	}
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	points, err := s.store.PRTrend(r.Context(), userIDFromContext(r), exercise, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleExerciseDetail(w http.ResponseWriter, r *http.Request) {
	exercise := strings.TrimSpace(r.URL.Query().Get("exercise"))
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise is required"})
		return
	}
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	days, err := s.store.ExerciseDetail(r.Context(), userIDFromContext(r), exercise, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleCoachRecommendations(w http.ResponseWriter, r *http.Request) {
	days := coach.DefaultDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be an integer"})
			return
		}
		days = n
	}
	if err := coach.ValidateDays(days); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	report, err := s.store.CoachReport(r.Context(), userIDFromContext(r), days)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}
