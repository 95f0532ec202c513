package status

import "time"

// State is the semantic operational state shown on the status page
type State string

const (
	StateUp       State = "up"
	StateDegraded State = "degraded"
	StateDown     State = "down"
)

// Severity classifies an incident purely by outage duration
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// IncidentStatus marks whether an incident has ended
type IncidentStatus string

const (
	IncidentOngoing  IncidentStatus = "ongoing"
	IncidentResolved IncidentStatus = "resolved"
)

// DowntimeEvent is one logged interval during which the target was
// unreachable. A zero Duration means the outage is still open.
type DowntimeEvent struct {
	Start    time.Time
	Duration time.Duration
	Reason   string
}

// DayBucket is one calendar day's aggregated downtime within the
// trailing history window.
type DayBucket struct {
	Date          string  `json:"date"`
	DownMinutes   float64 `json:"downMinutes"`
	Status        State   `json:"status"`
	UptimePercent float64 `json:"uptimePercent"`
}

// Incident is a user-facing record derived from one downtime event
type Incident struct {
	ID          string         `json:"id"`
	ServiceName string         `json:"serviceName"`
	Status      IncidentStatus `json:"status"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartedAt   time.Time      `json:"startedAt"`
	ResolvedAt  *time.Time     `json:"resolvedAt"`
	Severity    Severity       `json:"severity"`
}

// MonitorSummary holds the scalar fields of a monitor snapshot
type MonitorSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	Status        State    `json:"status"`
	Latency       *float64 `json:"latency"`
	Uptime30d     *float64 `json:"uptime30d"`
	Uptime90d     *float64 `json:"uptime90d"`
	AllTimeUptime *float64 `json:"allTimeUptime"`
	LastCheck     string   `json:"lastCheck"`
}

// MonitorResult is the full snapshot including the derived history and
// incident views. It is the only object crossing the boundary to the
// client and is built fresh on every request.
type MonitorResult struct {
	MonitorSummary
	History   []DayBucket `json:"history"`
	Incidents []Incident  `json:"incidents"`
}
