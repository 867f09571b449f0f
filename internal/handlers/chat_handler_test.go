// File: internal/handlers/chat_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/astraid/astraid/internal/domain"
	"github.com/astraid/astraid/internal/middleware"
	chatrepo "github.com/astraid/astraid/internal/repository/chat"
	guiderepo "github.com/astraid/astraid/internal/repository/guide"
	"github.com/astraid/astraid/internal/services"
	"github.com/astraid/astraid/internal/services/ai"
	chatservice "github.com/astraid/astraid/internal/services/chat"
)

type fakeStream struct {
	stream string
	err    error
}

func (p *fakeStream) StreamChat(ctx context.Context, messages domain.MessageList) (io.ReadCloser, error) {
	if p.err != nil {
		return nil, p.err
	}
	return io.NopCloser(strings.NewReader(p.stream)), nil
}

func newChatHandler(t *testing.T, provider ai.StreamProvider) (*ChatHandler, chatrepo.ChatRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Chat{}, &domain.TrainingGuide{}))

	cr := chatrepo.NewChatRepository(db)
	gr := guiderepo.NewGuideRepository(db)
	svc, err := chatservice.NewService(chatservice.DefaultConfig(), cr, gr, provider, &services.NoOpLogger{})
	require.NoError(t, err)
	return NewChatHandler(svc), cr
}

func withUser(r *http.Request, userID uint) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	return r.WithContext(ctx)
}

// TestHandleChatTurn_MalformedRequest verifies broken JSON and a missing
// messages array both answer 400.
func TestHandleChatTurn_MalformedRequest(t *testing.T) {
	handler, _ := newChatHandler(t, &fakeStream{stream: "{}"})

	cases := []struct {
		name string
		body string
	}{
		{"broken json", `{"messages": [`},
		{"missing messages", `{"guideId": "abc"}`},
		{"null messages", `{"messages": null}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			handler.HandleChatTurn(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Messages are required")
		})
	}
}

// TestHandleChatTurn_RelaysStream verifies the upstream bytes reach the
// client unmodified under the streaming content type.
func TestHandleChatTurn_RelaysStream(t *testing.T) {
	raw := `{"message":{"content":"Good"},"done":false}` + "\n" +
		`{"message":{"content":" dog."},"done":true}` + "\n"
	handler, _ := newChatHandler(t, &fakeStream{stream: raw})

	body := `{"messages":[{"role":"user","content":"hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleChatTurn(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/x-ndjson", rec.Header().Get("Content-Type"))
	assert.Equal(t, raw, rec.Body.String())
}

// TestHandleChatTurn_UpstreamFailureCollapses verifies upstream and
// config failures both answer a generic 500 with no internal detail.
func TestHandleChatTurn_UpstreamFailureCollapses(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"upstream error", ai.NewUpstreamError("503 Service Unavailable", "Ollama API error", nil)},
		{"config error", ai.NewConfigError("OLLAMA_URL and GEMMA_MODEL must be set in environment variables")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler, _ := newChatHandler(t, &fakeStream{err: tc.err})

			body := `{"messages":[{"role":"user","content":"hi"}]}`
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.HandleChatTurn(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Body.String(), "Failed to process chat request")
			assert.NotContains(t, rec.Body.String(), "Ollama")
		})
	}
}

// TestHandleChatTurn_PersistsForSignedInUser verifies a turn with an
// authenticated context leaves a transcript behind.
func TestHandleChatTurn_PersistsForSignedInUser(t *testing.T) {
	handler, cr := newChatHandler(t, &fakeStream{stream: "{}"})

	body := `{"messages":[{"role":"user","content":"hi"}]}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)), 9)
	rec := httptest.NewRecorder()

	handler.HandleChatTurn(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	chats, err := cr.FindByUserID(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

// TestGetChatByID_NotFoundShape verifies a stranger's probe and a missing
// id produce byte-identical 404 responses.
func TestGetChatByID_NotFoundShape(t *testing.T) {
	handler, cr := newChatHandler(t, &fakeStream{stream: "{}"})
	owner := uint(1)
	blob, err := json.Marshal(domain.MessageList{{Role: domain.RoleUser, Content: "seed"}})
	require.NoError(t, err)
	created, err := cr.Create(context.Background(), &domain.Chat{UserID: &owner, Messages: blob})
	require.NoError(t, err)

	fetch := func(chatID string, userID *uint) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/chats/"+chatID, nil)
		req = mux.SetURLVars(req, map[string]string{"id": chatID})
		if userID != nil {
			req = withUser(req, *userID)
		}
		rec := httptest.NewRecorder()
		handler.GetChatByID(rec, req)
		return rec
	}

	stranger := uint(2)
	denied := fetch(created.ID, &stranger)
	missing := fetch("no-such-chat", &stranger)

	assert.Equal(t, http.StatusNotFound, denied.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, missing.Body.String(), denied.Body.String())

	granted := fetch(created.ID, &owner)
	assert.Equal(t, http.StatusOK, granted.Code)
}

// TestGetUserChats_RequiresIdentity verifies the listing endpoint rejects
// anonymous callers.
func TestGetUserChats_RequiresIdentity(t *testing.T) {
	handler, _ := newChatHandler(t, &fakeStream{stream: "{}"})

	req := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	rec := httptest.NewRecorder()

	handler.GetUserChats(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
