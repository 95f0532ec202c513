package vpncheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookupIPAPI(t *testing.T) {
	tests := []struct {
		Name     string
		Response string
		Flagged  bool
	}{
		{"clean residential ip", `{"status":"success","proxy":false,"hosting":false}`, false},
		{"proxy flagged", `{"status":"success","proxy":true,"hosting":false}`, true},
		{"hosting flagged", `{"status":"success","proxy":false,"hosting":true}`, true},
		{"lookup failed upstream", `{"status":"fail"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/json/203.0.113.9" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(tt.Response))
			}))
			defer server.Close()

			checker := New("", server.Client())
			checker.ipAPIBase = server.URL

			verdict, err := checker.Lookup(context.Background(), "203.0.113.9")
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if verdict.Flagged != tt.Flagged {
				t.Errorf("expected flagged=%v but got %v", tt.Flagged, verdict.Flagged)
			}
			if verdict.Method != "ip-api.com" {
				t.Errorf("expected ip-api.com method but got %q", verdict.Method)
			}
		})
	}
}

func TestLookupVPNAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/203.0.113.9" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "vpn-key" {
			t.Errorf("expected key to be forwarded, got %q", got)
		}
		w.Write([]byte(`{"security":{"vpn":false,"proxy":false,"tor":true,"hosting":false}}`))
	}))
	defer server.Close()

	checker := New("vpn-key", server.Client())
	checker.vpnAPIBase = server.URL

	verdict, err := checker.Lookup(context.Background(), "203.0.113.9")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !verdict.Flagged {
		t.Error("tor exits must be flagged")
	}
	if verdict.Method != "vpnapi.io" {
		t.Errorf("expected vpnapi.io method but got %q", verdict.Method)
	}
}

func TestLookupErrorSurfacesToCaller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	checker := New("", server.Client())
	checker.ipAPIBase = server.URL

	if _, err := checker.Lookup(context.Background(), "203.0.113.9"); err == nil {
		t.Fatal("expected an error so the handler can fail open")
	}
}
