// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/astraid/astraid/internal/domain"
	"github.com/astraid/astraid/internal/middleware"
	"github.com/astraid/astraid/internal/services/chat"
)

type ChatHandler struct {
	ChatService *chat.Service
}

func NewChatHandler(cs *chat.Service) *ChatHandler {
	return &ChatHandler{ChatService: cs}
}

type chatTurnRequest struct {
	Messages domain.MessageList `json:"messages"`
	GuideID  string             `json:"guideId"`
	ChatID   string             `json:"chatId"`
}

// HandleChatTurn runs one chat turn and relays the upstream byte stream
// as the response body. The failure taxonomy collapses at this boundary:
// a malformed request is a 400, everything else a generic 500.
func (h *ChatHandler) HandleChatTurn(w http.ResponseWriter, r *http.Request) {
	var req chatTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Messages == nil {
		writeError(w, "Messages are required and must be an array", http.StatusBadRequest)
		return
	}

	var callerID *uint
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		callerID = &userID
	}

	stream, err := h.ChatService.StreamTurn(r.Context(), callerID, req.ChatID, req.GuideID, req.Messages)
	if err != nil {
		if chatErr, ok := err.(*chat.ChatError); ok && chatErr.Type == chat.ErrTypeValidation {
			writeError(w, chatErr.Message, http.StatusBadRequest)
			return
		}
		log.Printf("[ChatHandler] Chat turn failed: %v", err)
		writeError(w, "Failed to process chat request", http.StatusInternalServerError)
		return
	}
	defer stream.Close()

	relayStream(w, r, stream)
}

// relayStream pipes the upstream body to the client chunk by chunk,
// flushing as data arrives. A client disconnect cancels the request
// context, which aborts the upstream call and ends the copy.
func relayStream(w http.ResponseWriter, r *http.Request, stream io.Reader) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, canFlush := w.(http.Flusher)
	buf := make([]byte, 4096)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				// Downstream is gone; abandon the stream.
				return
			}
			if canFlush {
				flusher.Flush()
			}
		}
		if err != nil {
			if err != io.EOF && r.Context().Err() == nil {
				log.Printf("[ChatHandler] Upstream stream ended with error: %v", err)
			}
			return
		}
	}
}

// GetUserChats retrieves all chat histories for the authenticated user.
func (h *ChatHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chats, err := h.ChatService.GetUserChats(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not retrieve chats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

// GetChatByID retrieves one transcript. Unauthorized access is answered
// with the same 404 as a missing id.
func (h *ChatHandler) GetChatByID(w http.ResponseWriter, r *http.Request) {
	var callerID *uint
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		callerID = &userID
	}

	chatID := mux.Vars(r)["id"]
	found, err := h.ChatService.GetChatByID(r.Context(), callerID, chatID)
	if err != nil {
		if chat.IsNotFound(err) {
			writeError(w, "Chat not found", http.StatusNotFound)
			return
		}
		writeError(w, "Could not retrieve chat", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, found)
}
