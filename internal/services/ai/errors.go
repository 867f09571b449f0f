// File: internal/services/ai/errors.go
package ai

import "fmt"

type ErrorType string

const (
	ErrTypeConfig   ErrorType = "CONFIG"
	ErrTypeUpstream ErrorType = "UPSTREAM"
)

// AIError carries the failure class so the handler boundary can collapse
// it without string matching.
type AIError struct {
	Type       ErrorType
	Message    string
	StatusText string // upstream HTTP status text, when applicable
	Cause      error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error: %s", e.Type, e.Message)
}

func (e *AIError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *AIError {
	return &AIError{Type: ErrTypeConfig, Message: msg}
}

func NewUpstreamError(statusText, msg string, cause error) *AIError {
	return &AIError{Type: ErrTypeUpstream, Message: msg, StatusText: statusText, Cause: cause}
}

// IsConfigError reports whether err is a configuration failure, which is
// not retriable until the environment is fixed.
func IsConfigError(err error) bool {
	aiErr, ok := err.(*AIError)
	return ok && aiErr.Type == ErrTypeConfig
}
