// File: internal/repository/chat/chat_repository_test.go
package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/astraid/astraid/internal/domain"
)

func newTestRepo(t *testing.T) ChatRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Chat{}))
	return NewChatRepository(db)
}

func mustMarshal(t *testing.T, messages domain.MessageList) datatypes.JSON {
	t.Helper()
	blob, err := json.Marshal(messages)
	require.NoError(t, err)
	return datatypes.JSON(blob)
}

func decodeMessages(t *testing.T, chat *domain.Chat) domain.MessageList {
	t.Helper()
	var messages domain.MessageList
	require.NoError(t, json.Unmarshal(chat.Messages, &messages))
	return messages
}

// TestChatRepository_CreateAndFind verifies a transcript round-trips with
// its message order preserved.
func TestChatRepository_CreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uint(1)
	messages := domain.MessageList{
		{Role: domain.RoleUser, Content: "first"},
		{Role: domain.RoleAssistant, Content: "second"},
		{Role: domain.RoleUser, Content: "third"},
	}

	created, err := repo.Create(ctx, &domain.Chat{UserID: &userID, Messages: mustMarshal(t, messages)})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, messages, decodeMessages(t, found))
	require.NotNil(t, found.UserID)
	assert.Equal(t, userID, *found.UserID)
}

// TestChatRepository_GuestChat verifies a transcript with no owner is
// stored and retrieved with a nil user id.
func TestChatRepository_GuestChat(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Chat{
		Messages: mustMarshal(t, domain.MessageList{{Role: domain.RoleUser, Content: "hi"}}),
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.UserID)
}

func TestChatRepository_FindByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

// TestChatRepository_FindByUserID verifies listing returns only the
// user's transcripts, newest first.
func TestChatRepository_FindByUserID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uint(7)
	otherID := uint(8)
	blob := mustMarshal(t, domain.MessageList{{Role: domain.RoleUser, Content: "hi"}})

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	oldest, err := repo.Create(ctx, &domain.Chat{UserID: &userID, Messages: blob, CreatedAt: base})
	require.NoError(t, err)
	newest, err := repo.Create(ctx, &domain.Chat{UserID: &userID, Messages: blob, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Chat{UserID: &otherID, Messages: blob, CreatedAt: base.Add(2 * time.Hour)})
	require.NoError(t, err)

	chats, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, newest.ID, chats[0].ID)
	assert.Equal(t, oldest.ID, chats[1].ID)
}

// TestChatRepository_ReplaceMessages verifies the stored list is replaced
// wholesale and the same replace applied twice leaves the same state.
func TestChatRepository_ReplaceMessages(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uint(1)

	created, err := repo.Create(ctx, &domain.Chat{
		UserID:   &userID,
		Messages: mustMarshal(t, domain.MessageList{{Role: domain.RoleUser, Content: "old"}}),
	})
	require.NoError(t, err)

	replacement := domain.MessageList{
		{Role: domain.RoleUser, Content: "old"},
		{Role: domain.RoleAssistant, Content: "reply"},
		{Role: domain.RoleUser, Content: "follow-up"},
	}

	updated, err := repo.ReplaceMessages(ctx, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, replacement, decodeMessages(t, updated))

	again, err := repo.ReplaceMessages(ctx, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, replacement, decodeMessages(t, again))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, replacement, decodeMessages(t, found))
}

func TestChatRepository_ReplaceMessages_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.ReplaceMessages(context.Background(), "no-such-id", domain.MessageList{
		{Role: domain.RoleUser, Content: "hi"},
	})
	assert.ErrorIs(t, err, ErrChatNotFound)
}
