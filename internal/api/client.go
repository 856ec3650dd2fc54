// ABOUTME: HTTP client for the workout planner REST API.
// ABOUTME: Attaches the auth token and normalizes server errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harperreed/trainer/internal/models"
)

// Error is a normalized API failure: the HTTP status plus the server's
// error message when the body carried one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Client talks to the remote workout planner server. It holds no state
// between calls beyond the auth token it attaches to every request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logrus.Logger
}

// New creates a client for the given server. A nil logger falls back to the
// logrus standard logger.
func New(baseURL, token string, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// WithHTTPClient swaps the underlying HTTP client (used in tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Exercises fetches the exercise library, optionally filtered.
func (c *Client) Exercises(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	params := url.Values{}
	if filter.Muscle != "" {
		params.Set("muscle", filter.Muscle)
	}
	if filter.Difficulty != "" {
		params.Set("difficulty", filter.Difficulty)
	}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}

	var resp struct {
		Exercises []models.Exercise `json:"exercises"`
	}
	if err := c.get(ctx, "/api/workout/exercises", params, &resp); err != nil {
		return nil, err
	}
	return resp.Exercises, nil
}

// ActivePlan fetches the user's active plan with its days and exercises.
func (c *Client) ActivePlan(ctx context.Context) (*models.PlanBundle, error) {
	var bundle models.PlanBundle
	if err := c.get(ctx, "/api/workout/plan", nil, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// History fetches up to limit recent history entries starting at offset.
func (c *Client) History(ctx context.Context, limit, offset int) ([]*models.HistoryEntry, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var resp struct {
		History []*models.HistoryEntry `json:"history"`
	}
	if err := c.get(ctx, "/performance/history", params, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// LogWorkout delivers a completed workout to the server. The idempotency
// key, when set, lets the server drop a duplicate delivery of the same
// queued item.
func (c *Client) LogWorkout(ctx context.Context, payload models.LogRequest, idempotencyKey string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal log request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/performance/log-workout", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	return c.do(req, nil)
}

// Health probes server reachability. Used as the connectivity signal.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil, nil)
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return c.do(req, out)
}

// do executes a request, attaching the auth token and normalizing errors.
func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.normalizeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// normalizeError extracts the server's error message from the body.
func (c *Client) normalizeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}

	c.log.WithFields(logrus.Fields{
		"status": resp.StatusCode,
		"path":   resp.Request.URL.Path,
	}).Debug("api error response")

	return apiErr
}
