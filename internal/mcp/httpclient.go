package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/liftplan/internal/coach"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/storage"
)

// HTTPClient implements DataSource by calling the LiftPlan REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is only sent on writes.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, in any, wantStatus int) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, respBody)
	}

	return respBody, nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

// dateParams sets the non-zero bounds as calendar days.
func dateParams(start, end time.Time) url.Values {
	v := url.Values{}
	if !start.IsZero() {
		v.Set("start", start.Format(models.DateLayout))
	}
	if !end.IsZero() {
		v.Set("end", end.Format(models.DateLayout))
	}
	return v
}

// getJSON fetches path and decodes the 200 response into out.
func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, params, nil, http.StatusOK)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

// InsertRoutine posts the routine to the server and copies back the stored
// ID and creation time. The server scopes it to the caller.
func (c *HTTPClient) InsertRoutine(ctx context.Context, r *models.RoutineRow) error {
	in := models.RoutineInput{
		Name:       r.Name,
		Memo:       r.Memo,
		Items:      r.Items,
		Source:     r.Source,
		Goal:       r.Goal,
		Experience: r.Experience,
		Frequency:  r.Frequency,
	}
	body, err := c.do(ctx, http.MethodPost, "/api/v1/routines", nil, in, http.StatusCreated)
	if err != nil {
		return err
	}

	var stored models.RoutineRow
	if err := json.Unmarshal(body, &stored); err != nil {
		return fmt.Errorf("httpclient: decode routine: %w", err)
	}
	r.ID = stored.ID
	r.CreatedAt = stored.CreatedAt
	return nil
}

func (c *HTTPClient) ListRoutines(ctx context.Context, _ int) ([]models.RoutineRow, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/routines", nil, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var routines []models.RoutineRow
	if err := json.Unmarshal(body, &routines); err != nil {
		return nil, fmt.Errorf("httpclient: decode routines: %w", err)
	}
	return routines, nil
}

func (c *HTTPClient) QueryWorkouts(ctx context.Context, _ int, start, end time.Time) ([]models.WorkoutRow, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/workouts", timeParams(start, end), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var workouts []models.WorkoutRow
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

// InsertGenerationLog is a no-op: generation history is written by the
// server that stores the data, and the REST API exposes it read-only.
func (c *HTTPClient) InsertGenerationLog(context.Context, storage.GenerationLog) (int64, error) {
	return 0, nil
}

func (c *HTTPClient) PRTrend(ctx context.Context, _ int, exercise string, start, end time.Time) ([]storage.OneRMPoint, error) {
	params := dateParams(start, end)
	params.Set("exercise", exercise)
	var points []storage.OneRMPoint
	if err := c.getJSON(ctx, "/api/v1/analytics/pr-trend", params, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *HTTPClient) VolumeByPeriod(ctx context.Context, _ int, bucket string) ([]storage.PeriodVolume, error) {
	var path string
	switch bucket {
	case storage.BucketWeek:
		path = "/api/v1/analytics/weekly-volume"
	case storage.BucketMonth:
		path = "/api/v1/analytics/monthly-volume"
	default:
		return nil, fmt.Errorf("httpclient: unknown volume bucket %q", bucket)
	}
	var vols []storage.PeriodVolume
	if err := c.getJSON(ctx, path, nil, &vols); err != nil {
		return nil, err
	}
	return vols, nil
}

func (c *HTTPClient) MuscleVolume(ctx context.Context, _ int, start, end time.Time) ([]storage.CategoryVolume, error) {
	var vols []storage.CategoryVolume
	if err := c.getJSON(ctx, "/api/v1/analytics/muscle-volume-range", dateParams(start, end), &vols); err != nil {
		return nil, err
	}
	return vols, nil
}

func (c *HTTPClient) CoachReport(ctx context.Context, _ int, days int) (*coach.Report, error) {
	params := url.Values{}
	params.Set("days", strconv.Itoa(days))
	var report coach.Report
	if err := c.getJSON(ctx, "/api/v1/coach/recommendations", params, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
