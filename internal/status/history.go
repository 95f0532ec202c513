package status

import (
	"math"
	"time"
)

const (
	// HistoryDays is the trailing window shown on the status page,
	// including the current day.
	HistoryDays = 30

	minutesPerDay = 24 * 60

	// degradedThresholdMinutes is the cutoff between a degraded day and a
	// down day. More than an hour of accumulated downtime marks the whole
	// day as down.
	degradedThresholdMinutes = 60
)

// BuildHistory reconstructs a day-by-day operational history for the last
// HistoryDays calendar days (UTC, oldest first, anchored on now's day).
//
// Each event's interval is clipped against every day's [00:00, 24:00)
// boundary, so an outage spanning midnight contributes its minutes to each
// day it touches without ever counting a minute twice. An event with zero
// duration is treated as still ongoing: its interval runs from its start
// up to now, so an open-ended multi-day outage accrues downtime on every
// day it spans.
func BuildHistory(events []DowntimeEvent, now time.Time) []DayBucket {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowStart := today.AddDate(0, 0, -(HistoryDays - 1))

	downMinutes := make([]float64, HistoryDays)

	for _, ev := range events {
		evStart := ev.Start.UTC()
		evEnd := evStart.Add(ev.Duration)
		if ev.Duration <= 0 {
			evEnd = now
		}
		if !evEnd.After(evStart) {
			continue
		}

		for i := 0; i < HistoryDays; i++ {
			dayStart := windowStart.AddDate(0, 0, i)
			dayEnd := dayStart.AddDate(0, 0, 1)

			overlapStart := maxTime(evStart, dayStart)
			overlapEnd := minTime(evEnd, dayEnd)
			if overlapEnd.After(overlapStart) {
				downMinutes[i] += overlapEnd.Sub(overlapStart).Minutes()
			}
		}
	}

	buckets := make([]DayBucket, HistoryDays)
	for i := range buckets {
		minutes := math.Min(downMinutes[i], minutesPerDay)
		percent := ((minutesPerDay - minutes) / minutesPerDay) * 100
		percent = math.Min(math.Max(percent, 0), 100)

		var state State
		switch {
		case minutes > degradedThresholdMinutes:
			state = StateDown
		case minutes > 0:
			state = StateDegraded
		default:
			state = StateUp
		}

		buckets[i] = DayBucket{
			Date:          windowStart.AddDate(0, 0, i).Format("2006-01-02"),
			DownMinutes:   minutes,
			Status:        state,
			UptimePercent: percent,
		}
	}

	return buckets
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
