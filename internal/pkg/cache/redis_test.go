package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *RedisClient {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client, err := NewRedisClient(&Config{Addr: addr})
	if err != nil {
		t.Skipf("skipping redis tests: could not connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestVersionedWriteSkippedAfterInvalidate(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	prefix := "test:" + uuid.NewString()
	versionKey, key := prefix+":version", prefix+":list"
	t.Cleanup(func() { client.Client.Del(context.Background(), versionKey, key) })

	v, err := client.Version(ctx, versionKey)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	// A write lands between the reader's version read and its cache write.
	require.NoError(t, client.Invalidate(ctx, versionKey, key))

	stored, err := client.SetJSONAtVersion(ctx, versionKey, v, key, []string{"stale"}, time.Minute)
	require.NoError(t, err)
	assert.False(t, stored)

	var got []string
	hit, err := client.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	v, err = client.Version(ctx, versionKey)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	stored, err = client.SetJSONAtVersion(ctx, versionKey, v, key, []string{"fresh"}, time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)

	hit, err = client.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"fresh"}, got)

	require.NoError(t, client.Invalidate(ctx, versionKey, key))
	hit, err = client.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
