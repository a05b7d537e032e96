package provider

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"
)

// LevelTrace is a custom log level for HTTP traffic dumps.
const LevelTrace = slog.Level(-8)

// loggingTransport dumps request and response bytes at LevelTrace, with the
// API key redacted. When keyHeader is set it also injects the key, because
// some SDKs skip their own key handling once a custom client is supplied.
type loggingTransport struct {
	base      http.RoundTripper
	provider  string
	apiKey    string
	keyHeader string
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.keyHeader != "" && t.apiKey != "" && req.Header.Get(t.keyHeader) == "" && req.URL.Query().Get("key") == "" {
		req = req.Clone(req.Context())
		req.Header.Set(t.keyHeader, t.apiKey)
	}

	if !slog.Default().Enabled(req.Context(), LevelTrace) {
		return t.base.RoundTrip(req)
	}

	if dump, err := httputil.DumpRequestOut(req, true); err != nil {
		slog.Debug("dump request failed", "provider", t.provider, "error", err)
	} else {
		slog.Log(req.Context(), LevelTrace, "http request", "provider", t.provider, "url", req.URL.String(), "dump", t.redact(dump))
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err != nil {
		slog.Debug("dump response failed", "provider", t.provider, "error", err)
	} else {
		slog.Log(req.Context(), LevelTrace, "http response", "provider", t.provider, "status", resp.StatusCode, "dump", t.redact(dump))
	}
	return resp, nil
}

func (t *loggingTransport) redact(b []byte) string {
	s := string(b)
	if t.apiKey != "" {
		s = strings.ReplaceAll(s, t.apiKey, "[REDACTED]")
	}
	return s
}

// httpClient wraps the configured base transport with logging.
func httpClient(s Settings, keyHeader string) *http.Client {
	base := http.DefaultTransport
	if s.HTTPClient != nil && s.HTTPClient.Transport != nil {
		base = s.HTTPClient.Transport
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &loggingTransport{
			base:      base,
			provider:  s.Provider,
			apiKey:    s.APIKey,
			keyHeader: keyHeader,
		},
	}
}
