package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	monitorState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "statuspage_monitor_state",
		Help: "Monitor state (2 = up, 1 = degraded, 0 = down)",
	})

	monitorLatency = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "statuspage_monitor_latency_milliseconds",
		Help: "Latest monitor response time in milliseconds",
	})

	uptimeRatio = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "statuspage_monitor_uptime_ratio",
		Help: "Monitor uptime percentage per trailing window",
	}, []string{"window"})

	refreshErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statuspage_refresh_errors_total",
		Help: "Number of failed background status refreshes",
	})

	lastRefresh = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "statuspage_last_refresh_timestamp_seconds",
		Help: "Unix timestamp of the last successful status refresh",
	})
)
