package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"summarizer/src/model"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(model.GeminiConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1/"}, "gemini-1.5-flash")
}

func TestSummarizeSendsPromptAndKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"contents":[{"parts":[{"text":"Summarize the following text in bullet point:\n\nThe {quick} fox."}]}]}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"* fox is quick\n* fox"}]}}]}`))
	})

	text, err := client.Summarize(context.Background(), "The {quick} fox.")
	require.NoError(t, err)
	assert.Equal(t, "* fox is quick\n* fox", text)
}

func TestSummarizeRequestFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	})

	_, err := client.Summarize(context.Background(), "text")
	var failure *RequestFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, http.StatusForbidden, failure.StatusCode)
	assert.Contains(t, failure.Body, "API key not valid")
	assert.Contains(t, err.Error(), "Status: 403")
}

func TestSummarizeUnexpectedShape(t *testing.T) {
	cases := map[string]string{
		"no candidates": `{"candidates":[]}`,
		"no content":    `{"candidates":[{"finishReason":"SAFETY"}]}`,
		"no parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
		"no text":       `{"candidates":[{"content":{"parts":[{}]}}]}`,
		"not json":      `<html>gateway</html>`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(payload))
			})

			_, err := client.Summarize(context.Background(), "text")
			assert.ErrorIs(t, err, ErrUnexpectedResponseShape)
		})
	}
}

func TestEndpointDefaults(t *testing.T) {
	client := NewClient(model.GeminiConfig{}, "gemini-1.5-flash")
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1/models/gemini-1.5-flash:generateContent", client.Endpoint())
	assert.Equal(t, "gemini-1.5-flash", client.ModelName())
}

func TestToRequestRoles(t *testing.T) {
	req := toRequest([]*schema.Message{
		schema.UserMessage("hi"),
		schema.AssistantMessage("hello", nil),
		nil,
	})
	require.Len(t, req.Contents, 2)
	assert.Empty(t, req.Contents[0].Role)
	assert.Equal(t, "model", req.Contents[1].Role)
	assert.Equal(t, "hello", req.Contents[1].Parts[0].Text)
}

func TestStreamSingleChunk(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"* one"}]}}]}`))
	})

	sr, err := client.Stream(context.Background(), []*schema.Message{schema.UserMessage("x")})
	require.NoError(t, err)
	defer sr.Close()

	msg, err := sr.Recv()
	require.NoError(t, err)
	assert.Equal(t, "* one", msg.Content)
	_, err = sr.Recv()
	assert.ErrorIs(t, err, io.EOF)
}
