package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/meltforce/liftplan/internal/models"
)

const maxAttempts = 3

// Client sends routines to the LiftPlan server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
}

// NewClient creates a new HTTP client for the LiftPlan server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		backoff: time.Second,
	}
}

// statusError is a non-retryable rejection by the server.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server rejected routine (status %d): %s", e.status, e.body)
}

// PushRoutine POSTs a routine to /api/v1/routines and returns the stored row.
// Network errors and 5xx responses are retried up to 3 times with
// exponential backoff; 4xx responses fail immediately.
func (c *Client) PushRoutine(ctx context.Context, in models.RoutineInput) (*models.RoutineRow, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshaling routine: %w", err)
	}

	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff << uint(attempt-1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		row, err := c.post(ctx, data)
		if err == nil {
			return row, nil
		}
		if _, ok := err.(*statusError); ok {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) post(ctx context.Context, data []byte) (*models.RoutineRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/v1/routines", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	switch {
	case resp.StatusCode == http.StatusCreated:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(body))}
	default:
		return nil, fmt.Errorf("push failed (status %d): %s", resp.StatusCode, body)
	}

	var row models.RoutineRow
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, fmt.Errorf("decoding stored routine: %w", err)
	}
	return &row, nil
}
