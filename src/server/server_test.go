package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"summarizer/src/model"
	"summarizer/src/storage"
	"summarizer/src/summary"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummarizer struct {
	text  string
	err   error
	calls int
}

func (s *stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	s.calls++
	return s.text, s.err
}

func newTestServer(t *testing.T, s summary.Summarizer, seed map[string]string) (*Server, *storage.MemoryStorage) {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	for k, v := range seed {
		require.NoError(t, store.Set(ctx, k, v))
	}
	reg := prometheus.NewRegistry()
	client := summary.NewClient(s, storage.NewHistoryRepository(store, ""), summary.WithMetrics(summary.MustNewMetrics(reg)))
	require.NoError(t, client.Load(ctx))
	return NewServer(client, model.ServerConfig{Addr: ":0"}, reg), store
}

func do(t *testing.T, srv *Server, method, path, body string) (*httptest.ResponseRecorder, model.Snapshot) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var snap model.Snapshot
	if rec.Code == http.StatusOK && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &snap)
	}
	return rec, snap
}

func TestSubmitEndpoint(t *testing.T) {
	srv, store := newTestServer(t, &stubSummarizer{text: "* one\n* two"}, nil)

	rec, snap := do(t, srv, http.MethodPost, "/api/summaries", `{"text":"long article"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, snap.History, 1)
	assert.Equal(t, "* one\n* two", snap.History[0].Text)
	assert.Equal(t, []string{"one", "two"}, snap.History[0].Bullets)
	assert.False(t, snap.Submitting)

	raw, ok, err := store.Get(context.Background(), model.HistoryKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["* one\n* two"]`, raw)
}

func TestSubmitEndpointSwallowsServiceFailure(t *testing.T) {
	stub := &stubSummarizer{err: errors.New("HTTP error! Status: 500 - boom")}
	srv, _ := newTestServer(t, stub, map[string]string{model.HistoryKey: `["* old"]`})

	rec, snap := do(t, srv, http.MethodPost, "/api/summaries", `{"text":"article"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.calls)
	require.Len(t, snap.History, 1)
	assert.Equal(t, "* old", snap.History[0].Text)
}

func TestSubmitEndpointBlankInput(t *testing.T) {
	stub := &stubSummarizer{text: "* x"}
	srv, _ := newTestServer(t, stub, nil)

	rec, snap := do(t, srv, http.MethodPost, "/api/summaries", `{"text":"   "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, stub.calls)
	assert.Empty(t, snap.History)
}

func TestSubmitEndpointRejectsBadJSON(t *testing.T) {
	srv, _ := newTestServer(t, &stubSummarizer{}, nil)

	rec, _ := do(t, srv, http.MethodPost, "/api/summaries", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEndpointRemovesByValue(t *testing.T) {
	srv, store := newTestServer(t, &stubSummarizer{}, map[string]string{
		model.HistoryKey: `["* a","* b","* a"]`,
	})

	rec, snap := do(t, srv, http.MethodDelete, "/api/summaries", `{"text":"* a"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, snap.History, 1)
	assert.Equal(t, "* b", snap.History[0].Text)

	raw, _, err := store.Get(context.Background(), model.HistoryKey)
	require.NoError(t, err)
	assert.JSONEq(t, `["* b"]`, raw)
}

func TestCopyEndpointRaisesFlag(t *testing.T) {
	srv, _ := newTestServer(t, &stubSummarizer{}, map[string]string{model.HistoryKey: `["* a"]`})

	rec, snap := do(t, srv, http.MethodPost, "/api/summaries/copy", `{"text":"* a"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, snap.Copied)
}

func TestPinnedEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubSummarizer{}, map[string]string{model.PinnedKey: `"* keep"`})

	rec, _ := do(t, srv, http.MethodGet, "/api/pinned", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pinned":"* keep"}`, rec.Body.String())

	empty, _ := newTestServer(t, &stubSummarizer{}, nil)
	rec, _ = do(t, empty, http.MethodGet, "/api/pinned", "")
	assert.JSONEq(t, `{"pinned":null}`, rec.Body.String())
}

func TestIndexRendersHistory(t *testing.T) {
	srv, _ := newTestServer(t, &stubSummarizer{}, map[string]string{
		model.HistoryKey: `["* <b>bold</b>\n\n* plain"]`,
		model.PinnedKey:  `"pinned text"`,
	})

	rec, _ := do(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Summary History")
	assert.Contains(t, body, "<li>plain</li>")
	assert.Contains(t, body, "&lt;b&gt;bold&lt;/b&gt;")
	assert.Contains(t, body, "pinned text")
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t, &stubSummarizer{text: "* x"}, nil)

	rec, _ := do(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	do(t, srv, http.MethodPost, "/api/summaries", `{"text":"hello"}`)
	rec, _ = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `summarizer_submits_total{outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), "summarizer_history_entries 1")
}
