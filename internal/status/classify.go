package status

import "github.com/blobyeu/statuspage/internal/uptimerobot"

// ClassifyCode maps a provider status code to a semantic state. This is a
// total function: codes that are paused, not yet checked, down, or simply
// unrecognized all report as down so that an unknown condition is never
// shown as healthy.
func ClassifyCode(code int) State {
	switch code {
	case uptimerobot.StatusUp:
		return StateUp
	case uptimerobot.StatusSeemsDown:
		return StateDegraded
	case uptimerobot.StatusPaused, uptimerobot.StatusNotChecked, uptimerobot.StatusDown:
		return StateDown
	default:
		return StateDown
	}
}
