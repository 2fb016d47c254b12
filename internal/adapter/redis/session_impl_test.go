package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cookie-table/internal/entity"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestTokenRoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepo(client, time.Minute)
	ctx := context.Background()

	token, err := repo.Token(ctx, "missing-session")
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, repo.SaveToken(ctx, "sess-1", "tok-abc"))
	token, err = repo.Token(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestFlashQueueDrainsInOrder(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepo(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.PushFlash(ctx, "sess-2", entity.NewFlashError("Missing required parameters")))
	require.NoError(t, repo.PushFlash(ctx, "sess-2", entity.NewFlashSuccess("Cookie saved: wires")))

	notices, err := repo.PopFlashes(ctx, "sess-2")
	require.NoError(t, err)
	require.Len(t, notices, 2)
	assert.Equal(t, entity.FlashError, notices[0].Kind)
	assert.Equal(t, "Cookie saved: wires", notices[1].Message)

	// Notices are shown once and then discarded.
	notices, err = repo.PopFlashes(ctx, "sess-2")
	require.NoError(t, err)
	assert.Empty(t, notices)
}

func TestFlashQueuesAreScopedPerSession(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepo(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.PushFlash(ctx, "sess-a", entity.NewFlashSuccess("a")))

	notices, err := repo.PopFlashes(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, notices)
}
