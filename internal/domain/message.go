// File: internal/domain/message.go
package domain

// Message roles. Ordering within a MessageList is the conversation order
// and must survive persistence verbatim.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessageList is an ordered conversation transcript.
type MessageList []Message
