package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/blobyeu/statuspage/internal/config"
	"github.com/blobyeu/statuspage/internal/uptimerobot"
)

var assemblerNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func testUptimeConfig() config.UptimeConfig {
	return config.UptimeConfig{
		MonitorID:   "802022031",
		ServiceName: "bloby.eu",
		LogsLimit:   50,
	}
}

func newTestAssembler(t *testing.T, handler http.HandlerFunc) *Assembler {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := uptimerobot.NewClient("test-key", server.URL, server.Client())
	return NewAssembler(client, testUptimeConfig()).WithClock(func() time.Time { return assemblerNow })
}

const monitorPayload = `{
	"stat": "ok",
	"monitors": [{
		"id": 802022031,
		"friendly_name": "bloby.eu",
		"url": "https://bloby.eu",
		"status": 2,
		"response_times": [{"datetime": 1741953600, "value": 142}],
		"custom_uptime_ratio": "99.95-99.80",
		"all_time_uptime_ratio": "99.913",
		"logs": [
			{"type": 1, "datetime": 1741600800, "duration": 7200, "reason": {"detail": "Connection timeout"}},
			{"type": 1, "datetime": 1741852800, "duration": 300, "reason": {"detail": ""}},
			{"type": 2, "datetime": 1741608000, "duration": 0}
		]
	}]
}`

func TestAssemblerFetch(t *testing.T) {
	asm := newTestAssembler(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %s", err)
		}
		if got := r.PostForm.Get("monitors"); got != "802022031" {
			t.Errorf("expected monitor ID 802022031 but got %q", got)
		}
		if got := r.PostForm.Get("custom_uptime_ratios"); got != "30-90" {
			t.Errorf("expected custom ratios 30-90 but got %q", got)
		}
		if got := r.PostForm.Get("logs"); got != "1" {
			t.Errorf("expected logs=1 but got %q", got)
		}

		w.Write([]byte(monitorPayload))
	})

	result, err := asm.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if result.ID != "802022031" || result.Name != "bloby.eu" || result.URL != "https://bloby.eu" {
		t.Errorf("unexpected identity fields: %+v", result.MonitorSummary)
	}
	if result.Status != StateUp {
		t.Errorf("expected up but got %s", result.Status)
	}
	if result.Latency == nil || *result.Latency != 142 {
		t.Errorf("expected latency 142 but got %v", result.Latency)
	}
	if result.Uptime30d == nil || *result.Uptime30d != 99.95 {
		t.Errorf("expected uptime30d 99.95 but got %v", result.Uptime30d)
	}
	if result.Uptime90d == nil || *result.Uptime90d != 99.80 {
		t.Errorf("expected uptime90d 99.80 but got %v", result.Uptime90d)
	}
	if result.AllTimeUptime == nil || *result.AllTimeUptime != 99.913 {
		t.Errorf("expected allTimeUptime 99.913 but got %v", result.AllTimeUptime)
	}
	if result.LastCheck != "2025-03-15T12:00:00Z" {
		t.Errorf("expected lastCheck from the injected clock but got %q", result.LastCheck)
	}

	if len(result.History) != HistoryDays {
		t.Fatalf("expected %d history buckets but got %d", HistoryDays, len(result.History))
	}

	// Only the two type-1 log entries become incidents.
	if len(result.Incidents) != 2 {
		t.Fatalf("expected 2 incidents but got %d", len(result.Incidents))
	}
	if !result.Incidents[0].StartedAt.After(result.Incidents[1].StartedAt) {
		t.Error("incidents must be sorted newest first")
	}
	if result.Incidents[1].Description != "Connection timeout" {
		t.Errorf("expected provider reason on the older incident, got %q", result.Incidents[1].Description)
	}
}

func TestAssemblerFetchDeterministic(t *testing.T) {
	asm := newTestAssembler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(monitorPayload))
	})

	first, err := asm.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on first fetch: %s", err)
	}
	second, err := asm.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on second fetch: %s", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two fetches against unchanged upstream state must match:\n%s", diff)
	}
}

func TestAssemblerFetchSummaryOmitsLogs(t *testing.T) {
	asm := newTestAssembler(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %s", err)
		}
		if got := r.PostForm.Get("logs"); got != "" {
			t.Errorf("summary fetch must not request logs, got logs=%q", got)
		}

		w.Write([]byte(`{"stat":"ok","monitors":[{"id":802022031,"friendly_name":"bloby.eu","url":"https://bloby.eu","status":8}]}`))
	})

	summary, err := asm.FetchSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if summary.Status != StateDegraded {
		t.Errorf("expected degraded but got %s", summary.Status)
	}
	if summary.Latency != nil {
		t.Errorf("expected nil latency without samples but got %v", summary.Latency)
	}
	if summary.Uptime30d != nil || summary.Uptime90d != nil {
		t.Error("expected nil uptime ratios when the ratio string is absent")
	}
}

func TestAssemblerFetchErrors(t *testing.T) {
	t.Run("upstream failure", func(t *testing.T) {
		asm := newTestAssembler(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"stat":"fail","error":{"message":"api_key is wrong"}}`))
		})

		_, err := asm.Fetch(context.Background())
		var apiErr *uptimerobot.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError but got %v", err)
		}
		if apiErr.Message != "api_key is wrong" {
			t.Errorf("expected the provider's message but got %q", apiErr.Message)
		}
	})

	t.Run("monitor not found", func(t *testing.T) {
		asm := newTestAssembler(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"stat":"ok","monitors":[]}`))
		})

		_, err := asm.Fetch(context.Background())
		if !errors.Is(err, uptimerobot.ErrMonitorNotFound) {
			t.Fatalf("expected ErrMonitorNotFound but got %v", err)
		}
	})

	t.Run("transport error", func(t *testing.T) {
		asm := newTestAssembler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := asm.Fetch(context.Background())
		var transportErr *uptimerobot.TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError but got %v", err)
		}
		if transportErr.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("expected status 503 but got %d", transportErr.StatusCode)
		}
	})

	t.Run("missing credential", func(t *testing.T) {
		client := uptimerobot.NewClient("", "https://api.example.com/v2", nil)
		asm := NewAssembler(client, testUptimeConfig())

		_, err := asm.Fetch(context.Background())
		if !errors.Is(err, uptimerobot.ErrMissingAPIKey) {
			t.Fatalf("expected ErrMissingAPIKey but got %v", err)
		}
	})
}
