// File: internal/services/chat/service.go
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"gorm.io/datatypes"

	"github.com/astraid/astraid/internal/domain"
	chatrepo "github.com/astraid/astraid/internal/repository/chat"
	guiderepo "github.com/astraid/astraid/internal/repository/guide"
	"github.com/astraid/astraid/internal/services/ai"
)

// Service orchestrates a chat turn: optional guide grounding, best-effort
// transcript persistence, and the upstream stream call. Each turn is one
// independent request; the service holds no mutable state.
type Service struct {
	config         *Config
	chatRepo       chatrepo.ChatRepository
	guideRepo      guiderepo.GuideRepository
	provider       ai.StreamProvider
	contextBuilder *ContextBuilder
	logger         Logger
}

func NewService(
	config *Config,
	chatRepo chatrepo.ChatRepository,
	guideRepo guiderepo.GuideRepository,
	provider ai.StreamProvider,
	logger Logger,
) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		config:         config,
		chatRepo:       chatRepo,
		guideRepo:      guideRepo,
		provider:       provider,
		contextBuilder: NewContextBuilder(config),
		logger:         logger,
	}, nil
}

// StreamTurn runs one chat turn and returns the live upstream stream.
//
// The transcript is written with the pre-response message list; the
// assistant's reply is never appended server-side. Clients resubmit the
// full history each turn. Persistence is best-effort relative to
// responding: a storage failure is logged and the stream still flows.
func (s *Service) StreamTurn(
	ctx context.Context,
	callerID *uint,
	chatID string,
	guideID string,
	messages domain.MessageList,
) (io.ReadCloser, error) {
	if len(messages) == 0 {
		return nil, NewValidationError("stream_turn", "messages are required")
	}
	// The provider is absent when OLLAMA_URL/GEMMA_MODEL were missing at
	// startup. Only the chat flow is affected; the rest of the app runs.
	if s.provider == nil {
		return nil, ai.NewConfigError("OLLAMA_URL and GEMMA_MODEL must be set in environment variables")
	}

	var guide *domain.TrainingGuide
	if guideID != "" {
		found, err := s.guideRepo.FindByID(ctx, guideID)
		switch {
		case err == nil:
			guide = found
		case errors.Is(err, guiderepo.ErrGuideNotFound):
			// Unknown guide ids are tolerated; context is silently omitted.
			s.logger.Warn("guide not found, continuing without context", "guide_id", guideID)
		default:
			s.logger.Error("guide lookup failed, continuing without context", "guide_id", guideID, "error", err)
		}
	}

	if callerID != nil {
		s.persistTranscript(ctx, *callerID, chatID, messages)
	}

	stream, err := s.provider.StreamChat(ctx, s.contextBuilder.WithGuideContext(messages, guide))
	if err != nil {
		return nil, err
	}

	s.logger.Info("chat turn streaming",
		"chat_id", chatID, "guide_id", guideID, "messages", len(messages))
	return stream, nil
}

// persistTranscript creates or replaces the caller's transcript with the
// pre-response message list. Failures are logged, never surfaced.
func (s *Service) persistTranscript(ctx context.Context, callerID uint, chatID string, messages domain.MessageList) {
	if chatID == "" {
		blob, err := json.Marshal(messages)
		if err != nil {
			s.logger.Error("failed to encode transcript", "error", err)
			return
		}
		userID := callerID
		if _, err := s.chatRepo.Create(ctx, &domain.Chat{UserID: &userID, Messages: datatypes.JSON(blob)}); err != nil {
			s.logger.Error("failed to save transcript", "error", err)
		}
		return
	}

	if _, err := s.ReplaceChat(ctx, &callerID, chatID, messages); err != nil {
		s.logger.Error("failed to update transcript", "chat_id", chatID, "error", err)
	}
}

// GetChatByID fetches a transcript, applying the ownership gate: a chat
// with no owner is readable by anyone, otherwise only by its owner. An
// unauthorized caller gets the same not-found shape as a missing id.
func (s *Service) GetChatByID(ctx context.Context, callerID *uint, chatID string) (*domain.Chat, error) {
	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, chatrepo.ErrChatNotFound) {
			return nil, NewNotFoundError("get_chat")
		}
		return nil, NewStorageError("get_chat", "could not fetch chat", err)
	}

	if !s.canAccess(chat, callerID) {
		return nil, NewNotFoundError("get_chat")
	}
	return chat, nil
}

// ReplaceChat overwrites a transcript's message list in full, subject to
// the same ownership gate as reads. Two sequential replaces with the same
// list leave exactly that list stored.
func (s *Service) ReplaceChat(ctx context.Context, callerID *uint, chatID string, messages domain.MessageList) (*domain.Chat, error) {
	if len(messages) == 0 {
		return nil, NewValidationError("replace_chat", "messages are required")
	}

	existing, err := s.GetChatByID(ctx, callerID, chatID)
	if err != nil {
		return nil, err
	}

	updated, err := s.chatRepo.ReplaceMessages(ctx, existing.ID, messages)
	if err != nil {
		if errors.Is(err, chatrepo.ErrChatNotFound) {
			return nil, NewNotFoundError("replace_chat")
		}
		return nil, NewStorageError("replace_chat", "could not update chat", err)
	}
	return updated, nil
}

// GetUserChats lists the caller's transcripts, newest first.
func (s *Service) GetUserChats(ctx context.Context, userID uint) ([]domain.Chat, error) {
	chats, err := s.chatRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, NewStorageError("list_chats", "could not list chats", err)
	}
	return chats, nil
}

func (s *Service) canAccess(chat *domain.Chat, callerID *uint) bool {
	if chat.UserID == nil {
		return true
	}
	return callerID != nil && *chat.UserID == *callerID
}
