// Package netx provides network reachability checks for the sync engine.
package netx

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Probe answers whether the network is reachable right now.
type Probe interface {
	// Online performs a bounded-time reachability check. It never
	// returns an error: any failure simply reads as offline.
	Online(ctx context.Context) bool
}

const (
	// DefaultProbeURL is a well-known endpoint that answers tiny
	// responses and is reachable from most networks.
	DefaultProbeURL = "https://clients3.google.com/generate_204"

	// DefaultProbeTimeout bounds a single probe request.
	DefaultProbeTimeout = 5 * time.Second
)

// HTTPProbe checks connectivity with a single outbound GET. Any completed
// response counts as online regardless of status code; transport errors
// and timeouts count as offline. One request per call, no retries, so the
// latency a probe adds to a sync attempt stays bounded.
type HTTPProbe struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPProbe builds a probe against the given URL. Zero values fall back
// to the defaults.
func NewHTTPProbe(url string, timeout time.Duration) *HTTPProbe {
	if url == "" {
		url = DefaultProbeURL
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPProbe{url: url, timeout: timeout, client: &http.Client{}}
}

func (p *HTTPProbe) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return true
}
