// File: internal/domain/chat.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Chat is a persisted conversation transcript. The message list is stored
// as an opaque JSON blob and replaced wholesale on every turn; the server
// never appends to it incrementally.
type Chat struct {
	ID        string         `json:"id" gorm:"primarykey;size:36"`
	UserID    *uint          `json:"user_id" gorm:"index"` // nil for guest chats
	Messages  datatypes.JSON `json:"messages"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier so chat IDs are not guessable.
func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
