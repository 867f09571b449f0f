// File: internal/services/ai/interface.go
package ai

import (
	"context"
	"io"

	"github.com/astraid/astraid/internal/domain"
)

// StreamProvider issues a chat completion request against the inference
// endpoint and hands back the live response body. The caller owns the
// returned stream and must close it.
type StreamProvider interface {
	StreamChat(ctx context.Context, messages domain.MessageList) (io.ReadCloser, error)
}

// Logger defines the logging interface used by AI providers.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
