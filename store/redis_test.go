package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/reckit-cf/core"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := NewRedisStore(addr, 0)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "redis", s.Name())

	const key, hash = "reckit-cf:test:k", "reckit-cf:test:h"
	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, hash))

	_, err = s.Get(ctx, key)
	assert.True(t, core.IsStoreNotFound(err))
	require.NoError(t, s.Set(ctx, key, []byte("v"), 60))
	v, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, s.HSet(ctx, hash, "a", []byte("1.5")))
	fields, err := s.HGetAll(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1.5")}, fields)

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, hash))
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	_, err := NewRedisStore("127.0.0.1:1", 0)
	assert.Error(t, err)
}
