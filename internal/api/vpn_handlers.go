package api

import (
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/blobyeu/statuspage/internal/vpncheck"
)

// VPNCheckResponse reports whether the caller's IP is allowed to view
// the page
type VPNCheckResponse struct {
	Allowed bool   `json:"allowed"`
	IP      string `json:"ip,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HandleVPNCheck gates access on the client's IP. Local and private
// addresses pass without a lookup, and any lookup failure fails open:
// availability of the page wins over the gate.
func HandleVPNCheck(checker *vpncheck.Checker, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if isLocalIP(ip) {
			respondJSON(w, http.StatusOK, VPNCheckResponse{Allowed: true, IP: ip, Reason: "local"})
			return
		}

		verdict, err := checker.Lookup(r.Context(), ip)
		if err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("vpn lookup failed, allowing")
			respondJSON(w, http.StatusOK, VPNCheckResponse{Allowed: true, Error: "check_failed"})
			return
		}

		if verdict.Flagged {
			log.Info().Str("ip", ip).Str("method", verdict.Method).Msg("vpn/proxy detected")
			respondJSON(w, http.StatusOK, VPNCheckResponse{
				Allowed: false,
				IP:      ip,
				Reason:  "vpn_detected",
				Message: "Access denied. VPN or proxy detected.",
			})
			return
		}

		respondJSON(w, http.StatusOK, VPNCheckResponse{Allowed: true, IP: ip})
	}
}

// clientIP relies on chi's RealIP middleware having already folded
// X-Forwarded-For / X-Real-IP into RemoteAddr
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isLocalIP(s string) bool {
	ip := net.ParseIP(s)
	if ip == nil {
		return true
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast()
}
