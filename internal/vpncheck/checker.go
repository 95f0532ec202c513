package vpncheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultVPNAPIBase = "https://vpnapi.io"
	defaultIPAPIBase  = "http://ip-api.com"
)

// Checker looks up whether an IP belongs to a VPN, proxy, Tor exit, or
// hosting provider. With an API key it asks vpnapi.io; without one it
// falls back to the keyless ip-api.com service.
type Checker struct {
	apiKey     string
	httpClient *http.Client
	vpnAPIBase string
	ipAPIBase  string
}

// Verdict is the outcome of a lookup
type Verdict struct {
	Flagged bool
	Method  string
}

// New creates a checker. A nil httpClient falls back to a default with a
// 10 second timeout.
func New(apiKey string, httpClient *http.Client) *Checker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Checker{
		apiKey:     apiKey,
		httpClient: httpClient,
		vpnAPIBase: defaultVPNAPIBase,
		ipAPIBase:  defaultIPAPIBase,
	}
}

// WithBaseURLs overrides the provider endpoints. Used in tests to point
// the checker at a local server.
func (c *Checker) WithBaseURLs(vpnAPIBase, ipAPIBase string) *Checker {
	c.vpnAPIBase = vpnAPIBase
	c.ipAPIBase = ipAPIBase
	return c
}

// Lookup queries the configured provider for the given IP. Callers are
// expected to fail open on error: availability wins over gating.
func (c *Checker) Lookup(ctx context.Context, ip string) (Verdict, error) {
	if c.apiKey != "" {
		return c.lookupVPNAPI(ctx, ip)
	}
	return c.lookupIPAPI(ctx, ip)
}

func (c *Checker) lookupVPNAPI(ctx context.Context, ip string) (Verdict, error) {
	var body struct {
		Security *struct {
			VPN     bool `json:"vpn"`
			Proxy   bool `json:"proxy"`
			Tor     bool `json:"tor"`
			Hosting bool `json:"hosting"`
		} `json:"security"`
	}

	url := fmt.Sprintf("%s/api/%s?key=%s", c.vpnAPIBase, ip, c.apiKey)
	if err := c.getJSON(ctx, url, &body); err != nil {
		return Verdict{}, err
	}

	verdict := Verdict{Method: "vpnapi.io"}
	if body.Security != nil {
		verdict.Flagged = body.Security.VPN || body.Security.Proxy || body.Security.Tor
	}
	return verdict, nil
}

func (c *Checker) lookupIPAPI(ctx context.Context, ip string) (Verdict, error) {
	var body struct {
		Status  string `json:"status"`
		Proxy   bool   `json:"proxy"`
		Hosting bool   `json:"hosting"`
	}

	url := fmt.Sprintf("%s/json/%s?fields=status,proxy,hosting", c.ipAPIBase, ip)
	if err := c.getJSON(ctx, url, &body); err != nil {
		return Verdict{}, err
	}

	verdict := Verdict{Method: "ip-api.com"}
	if body.Status == "success" {
		verdict.Flagged = body.Proxy || body.Hosting
	}
	return verdict, nil
}

func (c *Checker) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", res.Status)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
