package status

import (
	"sort"
	"strconv"
	"time"
)

const (
	majorThreshold    = 10 * time.Minute
	criticalThreshold = time.Hour
)

// ExtractIncidents converts downtime events into user-facing incident
// records, one per event with no de-duplication, sorted newest first.
func ExtractIncidents(events []DowntimeEvent, serviceName string) []Incident {
	incidents := make([]Incident, 0, len(events))

	for _, ev := range events {
		startedAt := ev.Start.UTC()

		incident := Incident{
			ID:          strconv.FormatInt(startedAt.Unix(), 10),
			ServiceName: serviceName,
			StartedAt:   startedAt,
			Severity:    classifySeverity(ev.Duration),
		}

		if ev.Duration > 0 {
			resolvedAt := startedAt.Add(ev.Duration)
			incident.Status = IncidentResolved
			incident.ResolvedAt = &resolvedAt
			incident.Title = "Service disruption"
			incident.Description = reasonOrDefault(ev.Reason, "The service was unreachable.")
		} else {
			incident.Status = IncidentOngoing
			incident.Title = "Ongoing service disruption"
			incident.Description = reasonOrDefault(ev.Reason, "The service is currently unreachable.")
		}

		incidents = append(incidents, incident)
	}

	sort.SliceStable(incidents, func(i, j int) bool {
		return incidents[i].StartedAt.After(incidents[j].StartedAt)
	})

	return incidents
}

// classifySeverity derives severity purely from outage duration.
// Unresolved events (zero duration) default to minor.
func classifySeverity(duration time.Duration) Severity {
	switch {
	case duration > criticalThreshold:
		return SeverityCritical
	case duration > majorThreshold:
		return SeverityMajor
	default:
		return SeverityMinor
	}
}

func reasonOrDefault(reason, fallback string) string {
	if reason != "" {
		return reason
	}
	return fallback
}
