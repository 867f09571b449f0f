// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/astraid/astraid/internal/domain"
	"gorm.io/gorm"
)

var ErrChatNotFound = errors.New("chat not found")

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

// Create inserts a new transcript. A nil UserID is a guest chat.
func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	if chat == nil {
		return nil, errors.New("chat is required")
	}
	if len(chat.Messages) == 0 {
		return nil, errors.New("chat must carry a message list")
	}

	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		log.Printf("[ChatRepository] Database error during chat creation: %v", err)
		return nil, errors.New("database error creating chat")
	}

	log.Printf("[ChatRepository] Chat created with ID: %s", chat.ID)
	return chat, nil
}

func (r *gormChatRepository) FindByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	if chatID == "" {
		return nil, errors.New("invalid chat ID")
	}

	var chat domain.Chat
	err := r.db.WithContext(ctx).First(&chat, "id = ?", chatID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		log.Printf("[ChatRepository] Database error finding chat %s: %v", chatID, err)
		return nil, errors.New("database error fetching chat")
	}
	return &chat, nil
}

// FindByUserID returns the user's transcripts newest first.
func (r *gormChatRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&chats).Error
	if err != nil {
		log.Printf("[ChatRepository] Database error finding chats for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching chats")
	}

	return chats, nil
}

// ReplaceMessages overwrites the stored message list in full. Concurrent
// replaces on one id race at the storage layer; last write wins.
func (r *gormChatRepository) ReplaceMessages(ctx context.Context, chatID string, messages domain.MessageList) (*domain.Chat, error) {
	if chatID == "" {
		return nil, errors.New("invalid chat ID")
	}

	blob, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode messages: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Updates(map[string]interface{}{
			"messages":   blob,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		log.Printf("[ChatRepository] Database error replacing messages for chat %s: %v", chatID, result.Error)
		return nil, errors.New("database error updating chat")
	}
	if result.RowsAffected == 0 {
		return nil, ErrChatNotFound
	}

	return r.FindByID(ctx, chatID)
}
