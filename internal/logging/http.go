package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxLoggedBody caps how much of a request body ends up in a log line.
const maxLoggedBody = 10000

var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"api-key":       true,
	"x-api-key":     true,
	"cookie":        true,
	"set-cookie":    true,
}

// RoundTripper logs requests and response metadata at debug level.
// Streaming response bodies are never read here; they belong to the caller.
type RoundTripper struct {
	wrapped http.RoundTripper
	logger  *Logger
}

// NewRoundTripper wraps next (http.DefaultTransport when nil).
func NewRoundTripper(next http.RoundTripper, logger *Logger) *RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RoundTripper{wrapped: next, logger: logger}
}

// RoundTrip implements http.RoundTripper
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	fields := Fields{
		"method":  req.Method,
		"url":     req.URL.String(),
		"headers": redactHeaders(req.Header),
	}
	if req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		fields["body"] = loggableBody(body)
		fields["body_size"] = len(body)
	}
	rt.logger.Debug("HTTP Request", fields)

	resp, err := rt.wrapped.RoundTrip(req)
	if err != nil {
		rt.logger.Error("HTTP Error", err, Fields{"method": req.Method, "url": req.URL.String()})
		return nil, err
	}

	rt.logger.Debug("HTTP Response", Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
		"streaming":   isStreamingResponse(resp),
	})
	return resp, nil
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if sensitiveHeaders[strings.ToLower(k)] {
			out[k] = "[REDACTED]"
		} else if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// loggableBody returns parsed JSON when possible so JSON-format logs nest it.
func loggableBody(body []byte) interface{} {
	if len(body) <= maxLoggedBody && json.Valid(body) {
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err == nil {
			return parsed
		}
	}
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "...[truncated]"
	}
	return string(body)
}

func isStreamingResponse(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "text/event-stream")
}
