// File: internal/services/chat/config.go
package chat

import "fmt"

type Config struct {
	// GuideContextMaxChars is the hard cut applied to a guide body before
	// it is injected as grounding context. The cut is by character, not
	// word boundary; mid-word truncation is accepted.
	GuideContextMaxChars int
}

func (c *Config) Validate() error {
	if c.GuideContextMaxChars <= 0 {
		return fmt.Errorf("guide_context_max_chars must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		GuideContextMaxChars: 1000,
	}
}
