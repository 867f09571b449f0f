// File: internal/services/ai/config.go
package ai

import "time"

// Config holds the upstream inference endpoint settings. BaseURL and
// Model come from OLLAMA_URL and GEMMA_MODEL; both are hard requirements
// for the chat flow.
type Config struct {
	BaseURL string // Ollama base URL, e.g. http://localhost:11434
	Model   string // Model identifier, e.g. gemma3:4b

	// ResponseHeaderTimeout bounds how long the upstream may take to start
	// responding. It deliberately does not cap the stream itself; long
	// generations are legitimate and are bounded by client disconnect.
	ResponseHeaderTimeout time.Duration
}

func (c *Config) Validate() error {
	if c.BaseURL == "" || c.Model == "" {
		return NewConfigError("OLLAMA_URL and GEMMA_MODEL must be set in environment variables")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		ResponseHeaderTimeout: 30 * time.Second,
	}
}
