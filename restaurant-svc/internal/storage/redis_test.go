package storage

import (
	"context"
	"testing"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLocker(t *testing.T) (*RedisSlotLocker, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSlotLocker(client, 10*time.Second), mr
}

func TestRedisSlotLocker(t *testing.T) {
	locker, mr := setupTestLocker(t)
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)
	key := locker.SlotKey("t1", at)

	token, err := locker.Lock(ctx, "t1", at)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 10*time.Second, mr.TTL(key))

	_, err = locker.Lock(ctx, "t1", at)
	assert.ErrorIs(t, err, domain.ErrSlotLocked)

	_, err = locker.Lock(ctx, "t1", at.Add(time.Hour))
	assert.NoError(t, err, "other slots are independent")

	require.NoError(t, locker.Unlock(ctx, "t1", at, "someone-else"))
	assert.True(t, mr.Exists(key))

	require.NoError(t, locker.Unlock(ctx, "t1", at, token))
	assert.False(t, mr.Exists(key))

	_, err = locker.Lock(ctx, "t1", at)
	assert.NoError(t, err)
}

func TestRedisSlotLocker_Expiry(t *testing.T) {
	locker, mr := setupTestLocker(t)
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)

	_, err := locker.Lock(ctx, "t1", at)
	require.NoError(t, err)

	mr.FastForward(11 * time.Second)

	_, err = locker.Lock(ctx, "t1", at)
	assert.NoError(t, err)
}

func TestRedisSlotLocker_Unavailable(t *testing.T) {
	locker, mr := setupTestLocker(t)
	mr.Close()

	_, err := locker.Lock(context.Background(), "t1", time.Now())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSlotLocked)
}
