package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/blobyeu/statuspage/internal/vpncheck"
)

func TestVPNCheckLocalAddresses(t *testing.T) {
	tests := []struct {
		Name       string
		RemoteAddr string
	}{
		{"loopback", "127.0.0.1:52100"},
		{"private 10", "10.0.0.5:1234"},
		{"private 192", "192.168.1.20:1234"},
		{"unparsable", "unknown"},
	}

	handler := HandleVPNCheck(vpncheck.New("", nil), zerolog.Nop())

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/vpn-check", nil)
			req.RemoteAddr = tt.RemoteAddr
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200 but got %d", rec.Code)
			}

			var body VPNCheckResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %s", err)
			}
			if !body.Allowed {
				t.Error("local addresses must always be allowed")
			}
			if body.Reason != "local" {
				t.Errorf("expected reason local but got %q", body.Reason)
			}
		})
	}
}

func TestVPNCheckFailsOpenOnLookupError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	checker := vpncheck.New("", nil).WithBaseURLs(upstream.URL, upstream.URL)
	handler := HandleVPNCheck(checker, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/vpn-check", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("lookup failures must not block access, got %d", rec.Code)
	}

	var body VPNCheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %s", err)
	}
	if !body.Allowed {
		t.Error("expected allowed=true when the provider is unreachable")
	}
	if body.Error != "check_failed" {
		t.Errorf("expected error check_failed but got %q", body.Error)
	}
}

func TestVPNCheckDeniesFlaggedAddresses(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","proxy":true,"hosting":false}`))
	}))
	defer upstream.Close()

	checker := vpncheck.New("", nil).WithBaseURLs(upstream.URL, upstream.URL)
	handler := HandleVPNCheck(checker, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/vpn-check", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 but got %d", rec.Code)
	}

	var body VPNCheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %s", err)
	}
	if body.Allowed {
		t.Error("flagged addresses must be denied")
	}
	if body.Reason != "vpn_detected" {
		t.Errorf("expected reason vpn_detected but got %q", body.Reason)
	}
	if body.IP != "203.0.113.9" {
		t.Errorf("expected the client IP in the response, got %q", body.IP)
	}
}
