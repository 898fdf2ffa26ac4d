package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/quocvuong92/codemancer/internal/config"
	"github.com/quocvuong92/codemancer/internal/logging"
	"github.com/quocvuong92/codemancer/internal/stream"
)

// Client sends streaming chat-completion requests to one endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	model      string
	logger     *logging.Logger
}

// NewClient creates a client for the endpoint resolved in cfg.
// The HTTP client has no timeout: a stream runs until it ends or ctx is
// cancelled. In debug mode every request is logged with credentials redacted.
func NewClient(cfg *config.Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Nop()
	}

	transport := http.DefaultTransport
	if cfg.Debug {
		transport = logging.NewRoundTripper(http.DefaultTransport, logger)
	}

	return &Client{
		httpClient: &http.Client{Transport: transport},
		url:        cfg.APIURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		logger:     logger,
	}
}

// StreamCompletion sends req and streams the answer, passing every content
// fragment to sink as it arrives.
//
// A non-success status returns *APIError. A malformed event returns
// *stream.MalformedPayloadError. A connection that breaks mid-stream is not
// an error: the partial completion is returned with Err set.
func (c *Client) StreamCompletion(ctx context.Context, req CompletionRequest, sink stream.Sink) (*stream.Completion, error) {
	jsonData, err := json.Marshal(req.chatRequest(c.model))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	log := c.logger.With(logging.Fields{"request_id": requestID, "model": c.model})
	log.Debug("Completion request", logging.Fields{"url": c.url, "prompt_bytes": len(req.Prompt)})

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	completion, err := stream.Accumulate(stream.Decode(resp.Body), sink)
	if err != nil {
		log.Error("Stream failed", err)
		return nil, err
	}

	if completion.Partial() {
		log.Warn("Stream interrupted", logging.Fields{"bytes": len(completion.Text), "error": completion.Err.Error()})
	} else {
		log.Debug("Stream finished", logging.Fields{"bytes": len(completion.Text), "done": completion.Done})
	}
	return completion, nil
}
