package chat

import (
	"context"

	"github.com/astraid/astraid/internal/domain"
)

// ChatRepository handles transcript persistence. Every turn writes the
// whole accumulated message list; there are no append semantics.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindByID(ctx context.Context, chatID string) (*domain.Chat, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error)
	ReplaceMessages(ctx context.Context, chatID string, messages domain.MessageList) (*domain.Chat, error)
}
