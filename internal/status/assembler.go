package status

import (
	"context"
	"strconv"
	"time"

	"github.com/blobyeu/statuspage/internal/config"
	"github.com/blobyeu/statuspage/internal/uptimerobot"
)

// Assembler orchestrates one request cycle: a single outbound call to the
// uptime provider followed by reshaping the raw monitor record into a
// normalized result. It holds no cache and performs no retries; a failed
// upstream call surfaces immediately as an error with no partial result.
type Assembler struct {
	client      *uptimerobot.Client
	monitorID   string
	serviceName string
	logsLimit   int
	now         func() time.Time
}

// NewAssembler creates an assembler for the configured monitor
func NewAssembler(client *uptimerobot.Client, cfg config.UptimeConfig) *Assembler {
	return &Assembler{
		client:      client,
		monitorID:   cfg.MonitorID,
		serviceName: cfg.ServiceName,
		logsLimit:   cfg.LogsLimit,
		now:         time.Now,
	}
}

// WithClock overrides the assembler's clock. Tests use this to pin
// lastCheck and the history window anchor.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

// Fetch returns the full monitor snapshot including the day-bucketed
// history and extracted incidents, built from the provider's event log.
func (a *Assembler) Fetch(ctx context.Context) (*MonitorResult, error) {
	monitor, err := a.client.GetMonitor(ctx, a.monitorID, uptimerobot.GetMonitorOptions{
		IncludeLogs: true,
		LogsLimit:   a.logsLimit,
	})
	if err != nil {
		return nil, err
	}

	now := a.now()
	events := downtimeEvents(monitor.Logs)

	return &MonitorResult{
		MonitorSummary: a.summarize(monitor, now),
		History:        BuildHistory(events, now),
		Incidents:      ExtractIncidents(events, a.displayName(monitor)),
	}, nil
}

// FetchSummary returns the scalar fields only, without requesting the
// provider's event log.
func (a *Assembler) FetchSummary(ctx context.Context) (*MonitorSummary, error) {
	monitor, err := a.client.GetMonitor(ctx, a.monitorID, uptimerobot.GetMonitorOptions{})
	if err != nil {
		return nil, err
	}

	summary := a.summarize(monitor, a.now())
	return &summary, nil
}

func (a *Assembler) summarize(monitor *uptimerobot.Monitor, now time.Time) MonitorSummary {
	uptime30d, uptime90d := ParseRatioPair(monitor.CustomUptimeRatio)

	var latency *float64
	if len(monitor.ResponseTimes) > 0 {
		v := monitor.ResponseTimes[0].Value
		latency = &v
	}

	return MonitorSummary{
		ID:            strconv.FormatInt(monitor.ID, 10),
		Name:          a.displayName(monitor),
		URL:           monitor.URL,
		Status:        ClassifyCode(monitor.Status),
		Latency:       latency,
		Uptime30d:     uptime30d,
		Uptime90d:     uptime90d,
		AllTimeUptime: ParseRatio(monitor.AllTimeUptimeRatio),
		LastCheck:     now.UTC().Format(time.RFC3339),
	}
}

func (a *Assembler) displayName(monitor *uptimerobot.Monitor) string {
	if monitor.FriendlyName != "" {
		return monitor.FriendlyName
	}
	return a.serviceName
}

// downtimeEvents keeps only down entries from the provider's event log
func downtimeEvents(logs []uptimerobot.Log) []DowntimeEvent {
	events := make([]DowntimeEvent, 0, len(logs))
	for _, l := range logs {
		if l.Type != uptimerobot.LogTypeDown {
			continue
		}
		ev := DowntimeEvent{
			Start:    time.Unix(l.Datetime, 0).UTC(),
			Duration: time.Duration(l.Duration) * time.Second,
		}
		if l.Reason != nil {
			ev.Reason = l.Reason.Detail
		}
		events = append(events, ev)
	}
	return events
}
