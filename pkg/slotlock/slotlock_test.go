package slotlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, wait time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLocker(client, time.Second, wait)
	l.pollInterval = 5 * time.Millisecond
	return l, mr
}

func TestRedisLocker_AcquireRelease(t *testing.T) {
	l, mr := newTestLocker(t, 0)
	ctx := context.Background()
	key := Key("main-hall", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	release, err := l.Acquire(ctx, key)
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+"main-hall:2026-01-05"))

	_, err = l.Acquire(ctx, key)
	assert.ErrorIs(t, err, ErrLockTimeout)

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists(keyPrefix+key))

	release2, err := l.Acquire(ctx, key)
	require.NoError(t, err)
	require.NoError(t, release2(ctx))
}

func TestRedisLocker_WaitsForRelease(t *testing.T) {
	l, _ := newTestLocker(t, time.Second)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "v1:2026-01-05")
	require.NoError(t, err)

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = release(context.Background())
	}()

	release2, err := l.Acquire(ctx, "v1:2026-01-05")
	require.NoError(t, err)
	require.NoError(t, release2(ctx))
}

func TestRedisLocker_ReleaseDoesNotDropForeignLock(t *testing.T) {
	l, mr := newTestLocker(t, 0)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "v1:2026-01-05")
	require.NoError(t, err)

	// лок истёк и был взят другим владельцем
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set(keyPrefix+"v1:2026-01-05", "someone-else"))

	require.NoError(t, release(ctx))
	got, err := mr.Get(keyPrefix + "v1:2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestNopLocker(t *testing.T) {
	release, err := NopLocker{}.Acquire(context.Background(), "any")
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}
