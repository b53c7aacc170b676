package gemini

import (
	"context"

	"summarizer/src/model"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var _ einomodel.BaseChatModel = (*Client)(nil)

// Generate sends messages as one generateContent call. User and system
// messages go out without a role, which the service reads as the user;
// assistant messages are sent as the model's turns.
func (c *Client) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	resp, err := c.GenerateContent(ctx, toRequest(input))
	if err != nil {
		return nil, err
	}

	text, err := ExtractText(resp)
	if err != nil {
		return nil, err
	}
	return schema.AssistantMessage(text, nil), nil
}

// Stream is Generate delivered as a single-chunk stream
func (c *Client) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	out, err := c.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{out}), nil
}

func toRequest(messages []*schema.Message) model.GenerateContentRequest {
	req := model.GenerateContentRequest{Contents: make([]model.Content, 0, len(messages))}
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		content := model.Content{Parts: []model.Part{{Text: msg.Content}}}
		if msg.Role == schema.Assistant {
			content.Role = "model"
		}
		req.Contents = append(req.Contents, content)
	}
	return req
}
