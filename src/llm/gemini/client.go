package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"summarizer/src/model"

	"github.com/bytedance/sonic"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1"
	apiKeyHeader   = "x-goog-api-key"
)

// Client calls the Generative Language generateContent endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a client for modelName. A zero cfg.Timeout means the
// request waits as long as ctx allows.
func NewClient(cfg model.GeminiConfig, modelName string) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      modelName,
	}
}

// Endpoint is the URL summaries are POSTed to
func (c *Client) Endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
}

// ModelName returns the model identifier requests are sent to
func (c *Client) ModelName() string {
	return c.model
}

// Summarize asks the model for a bullet-point summary of text
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	messages, err := BuildPrompt(ctx, text)
	if err != nil {
		return "", fmt.Errorf("error building prompt: %w", err)
	}

	out, err := c.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	return out.Content, nil
}

// GenerateContent performs one POST and decodes the success payload
func (c *Client) GenerateContent(ctx context.Context, req model.GenerateContentRequest) (*model.GenerateContentResponse, error) {
	body, err := sonic.ConfigStd.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call generateContent: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestFailure{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var out model.GenerateContentResponse
	if err := sonic.ConfigStd.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponseShape, err)
	}
	return &out, nil
}

// ExtractText returns candidates[0].content.parts[0].text
func ExtractText(resp *model.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil || len(resp.Candidates) == 0:
		return "", fmt.Errorf("%w: no candidates", ErrUnexpectedResponseShape)
	case resp.Candidates[0].Content == nil:
		return "", fmt.Errorf("%w: candidate has no content", ErrUnexpectedResponseShape)
	case len(resp.Candidates[0].Content.Parts) == 0:
		return "", fmt.Errorf("%w: content has no parts", ErrUnexpectedResponseShape)
	case resp.Candidates[0].Content.Parts[0].Text == nil:
		return "", fmt.Errorf("%w: part has no text", ErrUnexpectedResponseShape)
	}
	return *resp.Candidates[0].Content.Parts[0].Text, nil
}
