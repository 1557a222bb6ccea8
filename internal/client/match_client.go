package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/friendr/quiz-session/internal/models"
)

// QuickMatchPath is where the matching backend accepts quiz submissions.
const QuickMatchPath = "/friendr/quiz/quick-match"

// maxResponseBytes bounds how much of a backend reply is read.
const maxResponseBytes = 1 << 20

// StatusError reports a non-2xx reply from the matching backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("matching backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("matching backend returned status %d: %s", e.StatusCode, e.Body)
}

// HTTPMatchClient posts submissions to the matching backend as JSON.
type HTTPMatchClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// HTTPClientConfig holds configuration for the HTTP match client
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewHTTPMatchClient(config HTTPClientConfig) *HTTPMatchClient {
	return &HTTPMatchClient{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     config.Logger,
	}
}

// Submit sends the payload and returns the backend's JSON reply unchanged.
func (c *HTTPMatchClient) Submit(ctx context.Context, payload models.SubmissionPayload) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission payload: %w", err)
	}

	url := c.baseURL + QuickMatchPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "Submitting quiz to matching backend", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach matching backend: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read matching backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WarnContext(ctx, "Matching backend rejected submission", "status_code", resp.StatusCode)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("matching backend returned invalid JSON")
	}

	return json.RawMessage(data), nil
}

// SimulatedMatchClient stands in for the matching backend while it does not
// exist: it waits, then echoes the preferences back.
type SimulatedMatchClient struct {
	delay  time.Duration
	logger *slog.Logger
}

func NewSimulatedMatchClient(delay time.Duration, logger *slog.Logger) *SimulatedMatchClient {
	return &SimulatedMatchClient{
		delay:  delay,
		logger: logger,
	}
}

type simulatedResponse struct {
	Simulated   bool                     `json:"simulated"`
	Preferences models.SubmissionPayload `json:"preferences"`
}

func (c *SimulatedMatchClient) Submit(ctx context.Context, payload models.SubmissionPayload) (json.RawMessage, error) {
	c.logger.DebugContext(ctx, "Simulating matching backend", "delay", c.delay.String())

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("simulated submission cancelled: %w", ctx.Err())
	case <-timer.C:
	}

	data, err := json.Marshal(simulatedResponse{Simulated: true, Preferences: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal simulated response: %w", err)
	}
	return data, nil
}
