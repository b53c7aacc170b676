package gemini

import (
	"context"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

const summaryTemplate = "Summarize the following text in bullet point:\n\n{text}"

// NewSummaryTemplate returns the single-message chat template wrapping the
// user's text in the summarization instruction.
func NewSummaryTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString, schema.UserMessage(summaryTemplate))
}

// BuildPrompt renders the summarization instruction for text
func BuildPrompt(ctx context.Context, text string) ([]*schema.Message, error) {
	return NewSummaryTemplate().Format(ctx, map[string]any{"text": text})
}
