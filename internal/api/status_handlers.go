package api

import (
	"errors"
	"net/http"

	"github.com/blobyeu/statuspage/internal/status"
	"github.com/blobyeu/statuspage/internal/uptimerobot"
)

// HandleGetStatus returns the full monitor snapshot including the
// 30-day history and extracted incidents
func HandleGetStatus(assembler *status.Assembler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := assembler.Fetch(r.Context())
		if err != nil {
			writeStatusError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetStatusSummary returns the scalar fields only, without
// history or incidents
func HandleGetStatusSummary(assembler *status.Assembler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := assembler.FetchSummary(r.Context())
		if err != nil {
			writeStatusError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, summary)
	}
}

// writeStatusError maps the upstream error taxonomy onto HTTP codes:
// missing credential and provider application errors are 500, a non-2xx
// transport failure is 502, and an absent monitor record is 404.
func writeStatusError(w http.ResponseWriter, err error) {
	var transportErr *uptimerobot.TransportError
	var apiErr *uptimerobot.APIError

	switch {
	case errors.Is(err, uptimerobot.ErrMissingAPIKey):
		respondError(w, http.StatusInternalServerError, "API key not configured")
	case errors.Is(err, uptimerobot.ErrMonitorNotFound):
		respondError(w, http.StatusNotFound, "Monitor not found")
	case errors.As(err, &transportErr):
		respondError(w, http.StatusBadGateway, transportErr.Error())
	case errors.As(err, &apiErr):
		respondError(w, http.StatusInternalServerError, apiErr.Message)
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
