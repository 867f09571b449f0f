// File: internal/services/chat/context.go
package chat

import (
	"fmt"

	"github.com/astraid/astraid/internal/domain"
)

const guideContextTemplate = `You are AstrAID, an AI assistant for dog training.
The user is asking about a training guide with the following information:
Guide Title: %s
Summary: %s

Content: %s

Use this information to provide helpful, accurate advice. If the user asks something not related to this guide or dog training in general, you can still help but make it clear when you're going beyond the specific guide content.`

// ContextBuilder turns a training guide into a system-role instruction
// message. It is pure formatting over an already-fetched guide.
type ContextBuilder struct {
	config *Config
}

func NewContextBuilder(config *Config) *ContextBuilder {
	return &ContextBuilder{config: config}
}

// BuildGuideContext formats the grounding message for one guide. The body
// is cut at GuideContextMaxChars with no word-boundary trimming and an
// ellipsis marker appended when anything was dropped.
func (b *ContextBuilder) BuildGuideContext(guide *domain.TrainingGuide) domain.Message {
	return domain.Message{
		Role: domain.RoleSystem,
		Content: fmt.Sprintf(guideContextTemplate,
			guide.Title,
			guide.Summary,
			truncate(guide.ContentMd, b.config.GuideContextMaxChars)),
	}
}

// WithGuideContext prepends the guide's system message to the caller's
// message list. A nil guide passes the list through unchanged.
func (b *ContextBuilder) WithGuideContext(messages domain.MessageList, guide *domain.TrainingGuide) domain.MessageList {
	if guide == nil {
		return messages
	}

	withContext := make(domain.MessageList, 0, len(messages)+1)
	withContext = append(withContext, b.BuildGuideContext(guide))
	withContext = append(withContext, messages...)
	return withContext
}

// truncate applies a hard character cut. Mid-rune truncation is accepted
// behavior for context building, not an error.
func truncate(input string, maxLen int) string {
	if len(input) <= maxLen {
		return input
	}
	return input[:maxLen] + "..."
}
