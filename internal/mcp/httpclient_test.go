package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/coach"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/routinegen"
	"github.com/meltforce/liftplan/internal/storage"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListRoutines verifies the routines list is fetched without an API key
// and decoded.
func TestListRoutines(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/routines": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("method = %s, want GET", r.Method)
			}
			if r.Header.Get("X-API-Key") != "" {
				t.Error("API key sent on a read")
			}
			writeTestJSON(t, w, http.StatusOK, []models.RoutineRow{{ID: id, Name: "Legs", Source: models.SourceManual}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL+"/", "k")
	routines, err := client.ListRoutines(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(routines) != 1 || routines[0].ID != id {
		t.Errorf("routines = %+v", routines)
	}
}

// TestInsertRoutine verifies the routine is posted with its provenance and
// the stored ID is copied back.
func TestInsertRoutine(t *testing.T) {
	storedID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/routines": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if got := r.Header.Get("X-API-Key"); got != "secret" {
				t.Errorf("X-API-Key = %q", got)
			}
			var in models.RoutineInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Fatal(err)
			}
			if in.Source != models.SourceGenerated || in.Goal == nil || *in.Goal != "fat-loss" {
				t.Errorf("input = %+v", in)
			}
			row := models.NewRoutine(1, in)
			row.ID = storedID
			writeTestJSON(t, w, http.StatusCreated, row)
		},
	})
	defer ts.Close()

	row := models.NewGeneratedRoutine(1, routinegen.Generate(routinegen.UserProfile{Goal: "fat-loss"}))
	client := NewHTTPClient(ts.URL, "secret")
	if err := client.InsertRoutine(context.Background(), &row); err != nil {
		t.Fatal(err)
	}
	if row.ID != storedID {
		t.Errorf("id = %s, want %s", row.ID, storedID)
	}
}

// TestQueryWorkouts verifies the time range is sent as RFC 3339 and the
// workout dates are decoded.
func TestQueryWorkouts(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("start"); got != "2026-01-01T00:00:00Z" {
				t.Errorf("start = %q", got)
			}
			row, _ := models.WorkoutInput{Date: "2026-01-03", Category: "유산소", Exercise: "런닝", Type: "cardio"}.ToRow(1)
			writeTestJSON(t, w, http.StatusOK, []models.WorkoutRow{row})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	workouts, err := client.QueryWorkouts(context.Background(), 1, start, start.AddDate(0, 0, 7))
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 1 || workouts[0].DateString() != "2026-01-03" {
		t.Errorf("workouts = %+v", workouts)
	}
}

// TestHTTPClientServerError verifies non-success responses surface as errors.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/routines": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database down"}`))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	if _, err := client.ListRoutines(context.Background(), 1); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// TestPRTrendParams verifies the exercise is sent and only non-zero bounds
// become query parameters.
func TestPRTrendParams(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/analytics/pr-trend": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("exercise") != "벤치프레스" || q.Get("start") != "2025-01-01" || q.Has("end") {
				t.Errorf("query = %v", q)
			}
			writeTestJSON(t, w, http.StatusOK, []storage.OneRMPoint{{Date: "2025-01-02", OneRM: 100}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	points, err := client.PRTrend(context.Background(), 1, "벤치프레스", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 1 || points[0].OneRM != 100 {
		t.Errorf("points = %+v", points)
	}
}

// TestVolumeByPeriodPaths verifies each bucket maps to its route and unknown
// buckets fail without a request.
func TestVolumeByPeriodPaths(t *testing.T) {
	hit := map[string]bool{}
	serve := func(w http.ResponseWriter, r *http.Request) {
		hit[r.URL.Path] = true
		writeTestJSON(t, w, http.StatusOK, []storage.PeriodVolume{{Period: "2025-01", Volume: 10}})
	}
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/analytics/weekly-volume":  serve,
		"/api/v1/analytics/monthly-volume": serve,
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	for _, b := range []string{storage.BucketWeek, storage.BucketMonth} {
		if _, err := client.VolumeByPeriod(context.Background(), 1, b); err != nil {
			t.Fatal(err)
		}
	}
	if len(hit) != 2 {
		t.Errorf("paths hit = %v", hit)
	}
	if _, err := client.VolumeByPeriod(context.Background(), 1, "year"); err == nil {
		t.Error("expected error for unknown bucket")
	}
}

// TestCoachReportDays verifies the window length is sent and the report
// decoded.
func TestCoachReportDays(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/coach/recommendations": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("days"); got != "14" {
				t.Errorf("days = %q", got)
			}
			writeTestJSON(t, w, http.StatusOK, coach.Report{Days: 14, End: "2025-04-15",
				Recommendations: []coach.Recommendation{{Title: "Increase Training Frequency", Priority: coach.PriorityHigh}}})
		},
		"/api/v1/analytics/muscle-volume-range": func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Query()) != 0 {
				t.Errorf("open range sent %v", r.URL.Query())
			}
			writeTestJSON(t, w, http.StatusOK, []storage.CategoryVolume{})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	report, err := client.CoachReport(context.Background(), 1, 14)
	if err != nil {
		t.Fatal(err)
	}
	if report.Days != 14 || len(report.Recommendations) != 1 {
		t.Errorf("report = %+v", report)
	}
	if _, err := client.MuscleVolume(context.Background(), 1, time.Time{}, time.Time{}); err != nil {
		t.Fatal(err)
	}
}

// TestInsertGenerationLogNoop verifies remote mode never calls the server
// for generation logs.
func TestInsertGenerationLogNoop(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	if _, err := client.InsertGenerationLog(context.Background(), storage.GenerationLog{UserID: 1}); err != nil {
		t.Fatal(err)
	}
}
