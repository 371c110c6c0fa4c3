package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l := NewLimiter(NewMemoryStore(), 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(context.Background(), "user:1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := l.Allow(context.Background(), "user:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(NewMemoryStore(), 1, time.Minute)

	ok, err := l.Allow(context.Background(), "user:1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(context.Background(), "user:2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_WindowResets(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	_, err := store.Incr(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	n, err := store.Incr(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	now = now.Add(2 * time.Minute)
	n, err = store.Incr(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
