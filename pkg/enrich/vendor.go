package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/tidwall/gjson"

	"github.com/bmavalos/netlog-agent/pkg/types"
)

const (
	// DefaultVendorURL is the public MAC vendor directory queried per device.
	DefaultVendorURL = "https://api.macvendors.com"
	// DefaultVendorTimeout bounds a single vendor lookup request.
	DefaultVendorTimeout = 10 * time.Second
	// DefaultVendorRetries is the number of additional attempts after a
	// transport failure or rate-limit response.
	DefaultVendorRetries = 2
)

// VendorClient resolves a MAC address to a manufacturer name via an
// HTTP directory service.
type VendorClient struct {
	baseURL    string
	maxRetries int
	retryWait  time.Duration
	client     *http.Client
}

// NewVendorClient creates a client for the vendor directory at baseURL.
// Zero values fall back to the package defaults.
func NewVendorClient(baseURL string, timeout time.Duration, maxRetries int) *VendorClient {
	if baseURL == "" {
		baseURL = DefaultVendorURL
	}
	if timeout <= 0 {
		timeout = DefaultVendorTimeout
	}
	if maxRetries < 0 {
		maxRetries = DefaultVendorRetries
	}
	return &VendorClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		maxRetries: maxRetries,
		retryWait:  time.Second,
		client:     &http.Client{Timeout: timeout},
	}
}

// Lookup issues GET <base-url>/<mac> and returns the vendor name, or
// Unknown on any non-200 response or exhausted retries. The MAC is sent
// exactly as the neighbor table produced it; the directory accepts both
// separator styles. Transport errors and rate-limit responses are
// retried a bounded number of times with a growing wait.
func (c *VendorClient) Lookup(ctx context.Context, mac string) string {
	url := fmt.Sprintf("%s/%s", c.baseURL, mac)

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * c.retryWait
			gologger.Debug().Msgf("retrying vendor lookup for %s in %s (attempt %d/%d)", mac, wait, attempt, c.maxRetries)
			select {
			case <-ctx.Done():
				return types.Unknown
			case <-time.After(wait):
			}
		}

		vendor, retry := c.lookupOnce(ctx, url)
		if !retry {
			return vendor
		}
	}
	return types.Unknown
}

// lookupOnce performs a single request. The second return value reports
// whether the failure is worth retrying.
func (c *VendorClient) lookupOnce(ctx context.Context, url string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.Unknown, false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return types.Unknown, true
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return types.Unknown, true
		}
		return vendorFromBody(body), false
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return types.Unknown, true
	default:
		// Unregistered prefix or bad request, no point retrying.
		return types.Unknown, false
	}
}

// vendorFromBody extracts the vendor name from a response body. Plain
// text bodies are returned verbatim; JSON-shaped bodies (some mirror
// services) are reduced to their company/vendor field.
func vendorFromBody(body []byte) string {
	if len(body) == 0 {
		return types.Unknown
	}
	if gjson.ValidBytes(body) {
		result := gjson.ParseBytes(body)
		for _, key := range []string{"company", "vendor", "result.company"} {
			if v := result.Get(key); v.Exists() && v.String() != "" {
				return v.String()
			}
		}
	}
	return string(body)
}
