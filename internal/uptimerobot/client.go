package uptimerobot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Errors returned by the client. Handlers map these onto HTTP status codes.
var (
	// ErrMissingAPIKey means no credential was configured
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrMonitorNotFound means the response carried no monitor record
	ErrMonitorNotFound = errors.New("monitor not found")
)

// TransportError is a non-2xx HTTP response from the provider
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("UptimeRobot HTTP %d", e.StatusCode)
}

// APIError is an application-level failure (stat == "fail") from the provider
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the UptimeRobot v2 API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given credential and base URL.
// A nil httpClient falls back to a default with a 30 second timeout.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetMonitorOptions controls which optional fields getMonitors returns
type GetMonitorOptions struct {
	// IncludeLogs requests a bounded window of down-event log entries
	IncludeLogs bool
	LogsLimit   int
}

// GetMonitor fetches one monitor record with its latest latency sample,
// 30/90 day custom uptime ratios and all-time uptime ratio. Exactly one
// outbound call is made; failures surface immediately with no retry.
func (c *Client) GetMonitor(ctx context.Context, monitorID string, opts GetMonitorOptions) (*Monitor, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	form := url.Values{}
	form.Set("api_key", c.apiKey)
	form.Set("monitors", monitorID)
	form.Set("format", "json")
	form.Set("response_times", "1")
	form.Set("response_times_limit", "1")
	form.Set("all_time_uptime_ratio", "1")
	form.Set("custom_uptime_ratios", "30-90")

	if opts.IncludeLogs {
		form.Set("logs", "1")
		form.Set("log_types", strconv.Itoa(LogTypeDown))
		if opts.LogsLimit > 0 {
			form.Set("logs_limit", strconv.Itoa(opts.LogsLimit))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/getMonitors", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach UptimeRobot: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: res.StatusCode}
	}

	var body apiResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode UptimeRobot response: %w", err)
	}

	if body.Stat != "ok" {
		message := "Unknown API error"
		if body.Error != nil && body.Error.Message != "" {
			message = body.Error.Message
		}
		return nil, &APIError{Message: message}
	}

	if len(body.Monitors) == 0 {
		return nil, ErrMonitorNotFound
	}

	return &body.Monitors[0], nil
}
