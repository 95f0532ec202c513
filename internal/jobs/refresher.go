package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/blobyeu/statuspage/internal/status"
)

// Refresher periodically re-reads the monitor summary to keep the
// Prometheus gauges current and to log state transitions. It owns at
// most one outstanding upstream request at a time: a tick that fires
// while a fetch is still in flight is skipped, never queued.
type Refresher struct {
	assembler *status.Assembler
	log       zerolog.Logger
	inFlight  atomic.Bool
	lastState status.State
}

// NewRefresher creates a refresher for the given assembler
func NewRefresher(assembler *status.Assembler, log zerolog.Logger) *Refresher {
	return &Refresher{
		assembler: assembler,
		log:       log,
	}
}

// Refresh performs one summary fetch and updates the gauges. Safe to
// call from both the scheduler and a manual trigger.
func (r *Refresher) Refresh() {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.log.Debug().Msg("refresh already in flight, skipping")
		return
	}
	defer r.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary, err := r.assembler.FetchSummary(ctx)
	if err != nil {
		refreshErrors.Inc()
		r.log.Warn().Err(err).Msg("status refresh failed")
		return
	}

	monitorState.Set(stateValue(summary.Status))
	if summary.Latency != nil {
		monitorLatency.Set(*summary.Latency)
	}
	setRatio("30d", summary.Uptime30d)
	setRatio("90d", summary.Uptime90d)
	setRatio("all", summary.AllTimeUptime)
	lastRefresh.SetToCurrentTime()

	if r.lastState != "" && r.lastState != summary.Status {
		r.log.Info().
			Str("from", string(r.lastState)).
			Str("to", string(summary.Status)).
			Msg("monitor state changed")
	}
	r.lastState = summary.Status
}

func stateValue(s status.State) float64 {
	switch s {
	case status.StateUp:
		return 2
	case status.StateDegraded:
		return 1
	default:
		return 0
	}
}

func setRatio(window string, value *float64) {
	if value == nil {
		return
	}
	uptimeRatio.WithLabelValues(window).Set(*value)
}
