package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	limiter := NewLimiter(client, "walkin")
	ctx := context.Background()

	t.Run("AllowsUpToLimit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			ok, err := limiter.Allow(ctx, "qr-1:+100", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, ok, "attempt %d", i+1)
		}

		ok, err := limiter.Allow(ctx, "qr-1:+100", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		ok, err := limiter.Allow(ctx, "qr-1:+200", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("WindowExpires", func(t *testing.T) {
		ok, err := limiter.Allow(ctx, "qr-2:+300", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		assert.Equal(t, time.Minute, s.TTL("walkin:qr-2:+300"))

		s.FastForward(2 * time.Minute)

		ok, err = limiter.Allow(ctx, "qr-2:+300", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("RedisDown", func(t *testing.T) {
		broken := NewLimiter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "walkin")
		_, err := broken.Allow(ctx, "k", 1, time.Minute)
		assert.Error(t, err)
	})
}

func TestLimiter_NilClient(t *testing.T) {
	_, err := NewLimiter(nil, "x").Allow(context.Background(), "k", 1, time.Second)
	assert.ErrorIs(t, err, ErrNoClient)
}
