// Package client fetches job status, processing logs, and job metadata from
// the pipeline API. It performs no retries and keeps no cache; callers own
// polling cadence and error policy.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clipwatch/internal/progress"
	"clipwatch/internal/stage"
	"clipwatch/internal/timing"
)

// Client talks to one pipeline API endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New constructs a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// statusPayload is the job-status wire shape.
type statusPayload struct {
	Stage      string  `json:"stage"`
	Percent    float64 `json:"percent"`
	Message    string  `json:"message,omitempty"`
	ETASeconds float64 `json:"etaSeconds,omitempty"`
	AgentName  string  `json:"agentName,omitempty"`
	Status     string  `json:"status,omitempty"`
}

// logPayload is the processing-log wire shape. Timestamps are ISO 8601.
type logPayload struct {
	JobID     string    `json:"jobId"`
	AgentName string    `json:"agentName,omitempty"`
	Stage     string    `json:"stage,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// metaPayload is the job-metadata wire shape.
type metaPayload struct {
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Status fetches the job's current progress report.
func (c *Client) Status(ctx context.Context, jobID string) (progress.Event, error) {
	var p statusPayload
	if err := c.get(ctx, fmt.Sprintf("/api/jobs/%s/status", url.PathEscape(jobID)), &p); err != nil {
		return progress.Event{}, err
	}
	return progress.Event{
		Stage:      stage.ID(p.Stage),
		Percent:    p.Percent,
		Message:    p.Message,
		ETASeconds: p.ETASeconds,
		AgentName:  p.AgentName,
		Failed:     p.Status == "error",
	}, nil
}

// Logs fetches the job's full processing-log snapshot.
func (c *Client) Logs(ctx context.Context, jobID string) ([]timing.LogEntry, error) {
	var payload []logPayload
	if err := c.get(ctx, fmt.Sprintf("/api/jobs/%s/logs", url.PathEscape(jobID)), &payload); err != nil {
		return nil, err
	}
	entries := make([]timing.LogEntry, 0, len(payload))
	for _, p := range payload {
		entries = append(entries, timing.LogEntry{
			JobID:     p.JobID,
			AgentName: p.AgentName,
			Stage:     p.Stage,
			Status:    timing.Status(p.Status),
			CreatedAt: p.CreatedAt,
		})
	}
	return entries, nil
}

// Meta fetches the job's creation and completion timestamps.
func (c *Client) Meta(ctx context.Context, jobID string) (timing.JobMeta, error) {
	var p metaPayload
	if err := c.get(ctx, fmt.Sprintf("/api/jobs/%s", url.PathEscape(jobID)), &p); err != nil {
		return timing.JobMeta{}, err
	}
	meta := timing.JobMeta{CreatedAt: p.CreatedAt}
	if p.CompletedAt != nil {
		meta.CompletedAt = *p.CompletedAt
	}
	return meta, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pipeline api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pipeline api: %s returned %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("pipeline api: decode %s: %w", path, err)
	}
	return nil
}
