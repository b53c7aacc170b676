package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStorageIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()

	store, err := NewRedisStorage(ctx, redisURL)
	require.NoError(t, err)
	defer store.Close()

	repo := NewHistoryRepository(store, "summarizer-test:")
	history := []string{"* b", "* a"}
	require.NoError(t, repo.SaveHistory(ctx, history))

	loaded, err := repo.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, history, loaded)

	_, ok, err := store.Get(ctx, "summarizer-test:missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
