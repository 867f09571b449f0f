// File: internal/services/ai/ollama_provider.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/astraid/astraid/internal/domain"
)

// chatRequest is the Ollama /api/chat request body.
type chatRequest struct {
	Model    string             `json:"model"`
	Messages domain.MessageList `json:"messages"`
	Stream   bool               `json:"stream"`
}

// OllamaProvider speaks Ollama's native chat API and relays the streamed
// response body verbatim. It never parses the line-delimited chunks; it
// is a pass-through pipe. Safe for concurrent use.
type OllamaProvider struct {
	config     *Config
	httpClient *http.Client
	logger     Logger
}

// NewOllamaProvider validates the configuration once, up front. A missing
// base URL or model is a fatal condition for the chat flow, not something
// to rediscover on every request.
func NewOllamaProvider(config *Config, logger Logger) (*OllamaProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport
	if config.ResponseHeaderTimeout > 0 {
		transport = &http.Transport{
			ResponseHeaderTimeout: config.ResponseHeaderTimeout,
		}
	}

	return &OllamaProvider{
		config: config,
		// No overall client timeout: it would cut off long streams. The
		// transport bounds time-to-first-byte instead.
		httpClient: &http.Client{Transport: transport},
		logger:     logger,
	}, nil
}

// StreamChat issues a single POST {base}/api/chat with stream:true and
// returns the live response body. One attempt, no retry; a non-200 status
// surfaces as an upstream error carrying the status text. Cancelling ctx
// aborts the upstream request and releases the stream.
func (p *OllamaProvider) StreamChat(ctx context.Context, messages domain.MessageList) (io.ReadCloser, error) {
	if err := p.config.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model:    p.config.Model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, NewUpstreamError("", "failed to encode chat request", err)
	}

	url := strings.TrimRight(p.config.BaseURL, "/") + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewUpstreamError("", "failed to build chat request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Error("ollama request failed", "url", url, "error", err)
		return nil, NewUpstreamError("", "failed to reach inference endpoint", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		p.logger.Error("ollama returned non-success status",
			"status", resp.Status, "model", p.config.Model)
		return nil, NewUpstreamError(resp.Status, "Ollama API error: "+resp.Status, nil)
	}

	p.logger.Debug("ollama stream opened", "model", p.config.Model, "messages", len(messages))
	return resp.Body, nil
}
