// Package httputil holds the shared outbound HTTP client configuration.
package httputil

import (
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

// userAgent identifies this service to upstream APIs. Nominatim in
// particular rejects anonymous clients.
const userAgent = "agrosight/1.0"

// NewClient returns an HTTP client with the standard timeout and the
// identifying User-Agent applied to every request.
func NewClient() *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: &identifyingTransport{base: http.DefaultTransport},
	}
}

type identifyingTransport struct {
	base http.RoundTripper
}

func (t *identifyingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", userAgent)
	}
	return t.base.RoundTrip(req)
}
