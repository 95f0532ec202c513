package status

import (
	"math"
	"strconv"
	"strings"
)

// ParseRatioPair splits a compact "30d-90d" uptime ratio string such as
// "99.95-99.80" into two percentages. A missing string or an unparsable
// side degrades to nil for that side, never to zero and never to an error.
func ParseRatioPair(s string) (d30, d90 *float64) {
	if s == "" {
		return nil, nil
	}

	parts := strings.SplitN(s, "-", 2)
	d30 = ParseRatio(parts[0])
	if len(parts) > 1 {
		d90 = ParseRatio(parts[1])
	}
	return d30, d90
}

// ParseRatio parses a single uptime percentage, returning nil when the
// value is absent, unparsable, or not finite.
func ParseRatio(s string) *float64 {
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
