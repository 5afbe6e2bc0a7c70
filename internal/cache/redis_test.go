package cache

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*mr.Miniredis, *Redis) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	return m, NewRedis(client, "cache:")
}

func TestRedisSetGetDelete(t *testing.T) {
	ctx := context.Background()
	_, c := newTestRedis(t)

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte(`{"a":1}`), time.Minute))
	b, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`{"a":1}`), b)

	require.NoError(t, c.Delete(ctx, "k"))
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisExpiry(t *testing.T) {
	ctx := context.Background()
	m, c := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Second))
	_, ok, err := c.Get(ctx, "short")
	require.NoError(t, err)
	require.True(t, ok)

	m.FastForward(2 * time.Second)

	_, ok, err = c.Get(ctx, "short")
	require.NoError(t, err)
	require.False(t, ok, "entry should expire after TTL")
}

func TestRedisDeletePrefix(t *testing.T) {
	ctx := context.Background()
	_, c := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "documents:list:a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "documents:list:b", []byte("2"), time.Minute))
	require.NoError(t, c.Set(ctx, "documents:get:a", []byte("3"), time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, "documents:list:"))

	_, ok, _ := c.Get(ctx, "documents:list:a")
	require.False(t, ok)
	_, ok, _ = c.Get(ctx, "documents:list:b")
	require.False(t, ok)
	_, ok, _ = c.Get(ctx, "documents:get:a")
	require.True(t, ok)
}

func TestWrapWithRedis(t *testing.T) {
	ctx := context.Background()
	m, c := newTestRedis(t)

	calls := 0
	fn := func() ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	v1, err := Wrap(ctx, c, "list:1", time.Minute, fn)
	require.NoError(t, err)
	v2, err := Wrap(ctx, c, "list:1", time.Minute, fn)
	require.NoError(t, err)
	require.Equal(t, v1, v2)
	require.Equal(t, 1, calls)

	m.FastForward(2 * time.Minute)

	_, err = Wrap(ctx, c, "list:1", time.Minute, fn)
	require.NoError(t, err)
	require.Equal(t, 2, calls, "expired entry must recompute")
}
