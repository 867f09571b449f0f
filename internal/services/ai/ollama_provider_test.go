// File: internal/services/ai/ollama_provider_test.go
package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astraid/astraid/internal/domain"
	"github.com/astraid/astraid/internal/services"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:               baseURL,
		Model:                 "gemma3:4b",
		ResponseHeaderTimeout: 5 * time.Second,
	}
}

// TestNewOllamaProvider_MissingConfig verifies construction fails before
// any network activity when OLLAMA_URL or GEMMA_MODEL is absent.
func TestNewOllamaProvider_MissingConfig(t *testing.T) {
	cases := []struct {
		name   string
		config *Config
	}{
		{"missing base URL", &Config{Model: "gemma3:4b"}},
		{"missing model", &Config{BaseURL: "http://localhost:11434"}},
		{"missing both", &Config{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider, err := NewOllamaProvider(tc.config, &services.NoOpLogger{})
			require.Error(t, err)
			assert.Nil(t, provider)
			assert.True(t, IsConfigError(err))
			assert.Contains(t, err.Error(), "OLLAMA_URL and GEMMA_MODEL must be set in environment variables")
		})
	}
}

// TestStreamChat_RequestShape verifies the outgoing request: POST to
// {base}/api/chat, JSON content type, stream enabled, messages intact.
func TestStreamChat_RequestShape(t *testing.T) {
	var gotPath, gotMethod, gotContentType string
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"done":true}`))
	}))
	defer server.Close()

	// Trailing slash on the base URL must not double up in the path.
	provider, err := NewOllamaProvider(testConfig(server.URL+"/"), &services.NoOpLogger{})
	require.NoError(t, err)

	messages := domain.MessageList{
		{Role: domain.RoleSystem, Content: "context"},
		{Role: domain.RoleUser, Content: "hello"},
	}
	stream, err := provider.StreamChat(context.Background(), messages)
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, "/api/chat", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "gemma3:4b", gotBody.Model)
	assert.True(t, gotBody.Stream)
	assert.Equal(t, messages, gotBody.Messages)
}

// TestStreamChat_PassesBodyThroughVerbatim verifies the response body is
// relayed byte for byte, with no parsing or re-framing of the chunks.
func TestStreamChat_PassesBodyThroughVerbatim(t *testing.T) {
	raw := `{"message":{"role":"assistant","content":"Sit"},"done":false}` + "\n" +
		`{"message":{"role":"assistant","content":" means sit."},"done":true}` + "\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(raw))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(testConfig(server.URL), &services.NoOpLogger{})
	require.NoError(t, err)

	stream, err := provider.StreamChat(context.Background(), domain.MessageList{
		{Role: domain.RoleUser, Content: "what does sit mean"},
	})
	require.NoError(t, err)
	defer stream.Close()

	got, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, raw, string(got))
}

// TestStreamChat_UpstreamFailure verifies a non-200 answer surfaces as an
// upstream error carrying the status text, after exactly one attempt.
func TestStreamChat_UpstreamFailure(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(testConfig(server.URL), &services.NoOpLogger{})
	require.NoError(t, err)

	stream, err := provider.StreamChat(context.Background(), domain.MessageList{
		{Role: domain.RoleUser, Content: "hello"},
	})
	require.Error(t, err)
	assert.Nil(t, stream)
	assert.Equal(t, int32(1), attempts.Load())

	var aiErr *AIError
	require.ErrorAs(t, err, &aiErr)
	assert.Equal(t, ErrTypeUpstream, aiErr.Type)
	assert.Contains(t, aiErr.StatusText, "500")
	assert.False(t, IsConfigError(err))
}

// TestStreamChat_ContextCancellation verifies cancelling the caller's
// context aborts the upstream request.
func TestStreamChat_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(testConfig(server.URL), &services.NoOpLogger{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	stream, err := provider.StreamChat(ctx, domain.MessageList{
		{Role: domain.RoleUser, Content: "hello"},
	})
	require.Error(t, err)
	assert.Nil(t, stream)
	assert.ErrorIs(t, err, context.Canceled)
}
