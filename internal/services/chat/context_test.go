// File: internal/services/chat/context_test.go
package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astraid/astraid/internal/domain"
)

func testContextBuilder(t *testing.T) *ContextBuilder {
	t.Helper()
	return NewContextBuilder(DefaultConfig())
}

// TestWithGuideContext_NilGuide verifies the message list passes through
// untouched when no guide is attached to the turn.
func TestWithGuideContext_NilGuide(t *testing.T) {
	builder := testContextBuilder(t)
	messages := domain.MessageList{
		{Role: domain.RoleUser, Content: "How do I stop my dog from pulling?"},
	}

	result := builder.WithGuideContext(messages, nil)

	require.Len(t, result, 1)
	assert.Equal(t, messages[0], result[0])
}

// TestWithGuideContext_PrependsSystemMessage verifies the guide context
// arrives as a system-role message ahead of the caller's messages.
func TestWithGuideContext_PrependsSystemMessage(t *testing.T) {
	builder := testContextBuilder(t)
	guide := &domain.TrainingGuide{
		Title:     "Loose Leash Walking",
		Summary:   "Teach your dog to walk without pulling.",
		ContentMd: "Start in a low-distraction environment.",
	}
	messages := domain.MessageList{
		{Role: domain.RoleUser, Content: "Where do I start?"},
		{Role: domain.RoleAssistant, Content: "Let's begin with the basics."},
		{Role: domain.RoleUser, Content: "Okay."},
	}

	result := builder.WithGuideContext(messages, guide)

	require.Len(t, result, 4)
	assert.Equal(t, domain.RoleSystem, result[0].Role)
	assert.Contains(t, result[0].Content, "Guide Title: Loose Leash Walking")
	assert.Contains(t, result[0].Content, "Summary: Teach your dog to walk without pulling.")
	assert.Contains(t, result[0].Content, "Content: Start in a low-distraction environment.")
	assert.Equal(t, messages, result[1:])
}

// TestWithGuideContext_DoesNotMutateInput verifies the caller's slice is
// left alone; the prepend builds a fresh list.
func TestWithGuideContext_DoesNotMutateInput(t *testing.T) {
	builder := testContextBuilder(t)
	guide := &domain.TrainingGuide{Title: "Recall", Summary: "s", ContentMd: "c"}
	messages := domain.MessageList{
		{Role: domain.RoleUser, Content: "hello"},
	}

	_ = builder.WithGuideContext(messages, guide)

	require.Len(t, messages, 1)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
}

// TestBuildGuideContext_TruncatesLongContent verifies the guide body is
// cut at the configured limit with an ellipsis marker appended.
func TestBuildGuideContext_TruncatesLongContent(t *testing.T) {
	builder := testContextBuilder(t)
	body := strings.Repeat("a", 1500)
	guide := &domain.TrainingGuide{
		Title:     "Crate Training",
		Summary:   "Short summary.",
		ContentMd: body,
	}

	msg := builder.BuildGuideContext(guide)

	assert.Contains(t, msg.Content, body[:1000]+"...")
	assert.NotContains(t, msg.Content, strings.Repeat("a", 1001))
}

// TestBuildGuideContext_ShortContentUnchanged verifies bodies at or below
// the limit carry no ellipsis marker.
func TestBuildGuideContext_ShortContentUnchanged(t *testing.T) {
	builder := testContextBuilder(t)
	body := strings.Repeat("b", 1000)
	guide := &domain.TrainingGuide{
		Title:     "Crate Training",
		Summary:   "Short summary.",
		ContentMd: body,
	}

	msg := builder.BuildGuideContext(guide)

	assert.Contains(t, msg.Content, "Content: "+body)
	assert.NotContains(t, msg.Content, "...")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "", truncate("", 10))
}
