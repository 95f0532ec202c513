package uptimerobot

// Monitor status codes as reported by the getMonitors endpoint.
const (
	StatusPaused     = 0
	StatusNotChecked = 1
	StatusUp         = 2
	StatusSeemsDown  = 8
	StatusDown       = 9
)

// Log entry types. Only down events (type 1) carry downtime intervals.
const (
	LogTypeDown    = 1
	LogTypeUp      = 2
	LogTypeStarted = 98
	LogTypePaused  = 99
)

// Monitor is one monitor record from the getMonitors response
type Monitor struct {
	ID                 int64          `json:"id"`
	FriendlyName       string         `json:"friendly_name"`
	URL                string         `json:"url"`
	Status             int            `json:"status"`
	ResponseTimes      []ResponseTime `json:"response_times"`
	CustomUptimeRatio  string         `json:"custom_uptime_ratio"`
	AllTimeUptimeRatio string         `json:"all_time_uptime_ratio"`
	Logs               []Log          `json:"logs"`
}

// ResponseTime is a single latency sample in milliseconds
type ResponseTime struct {
	Datetime int64   `json:"datetime"`
	Value    float64 `json:"value"`
}

// Log is one event log entry. Datetime is a unix timestamp and Duration
// is in seconds; a duration of 0 means the event is still open.
type Log struct {
	Type     int        `json:"type"`
	Datetime int64      `json:"datetime"`
	Duration int64      `json:"duration"`
	Reason   *LogReason `json:"reason"`
}

// LogReason carries the provider's explanation for an event
type LogReason struct {
	Detail string `json:"detail"`
}

type apiResponse struct {
	Stat     string    `json:"stat"`
	Monitors []Monitor `json:"monitors"`
	Error    *apiError `json:"error"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
