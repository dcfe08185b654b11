package storage

import (
	"context"
	"strconv"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// unlockScript deletes the key only while it still holds the caller's token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisSlotLocker struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) *RedisSlotLocker {
	return &RedisSlotLocker{Client: client, TTL: ttl}
}

func (l *RedisSlotLocker) SlotKey(tableID string, at time.Time) string {
	return "slot:" + tableID + ":" + strconv.FormatInt(at.UnixMicro(), 10)
}

// Lock returns domain.ErrSlotLocked when another holder has the slot.
func (l *RedisSlotLocker) Lock(ctx context.Context, tableID string, at time.Time) (string, error) {
	token := uuid.NewString()
	ok, err := l.Client.SetNX(ctx, l.SlotKey(tableID, at), token, l.TTL).Result()
	if err != nil {
		return "", errors.Wrap(err, "acquire slot lock")
	}
	if !ok {
		return "", domain.ErrSlotLocked
	}
	return token, nil
}

func (l *RedisSlotLocker) Unlock(ctx context.Context, tableID string, at time.Time, token string) error {
	err := unlockScript.Run(ctx, l.Client, []string{l.SlotKey(tableID, at)}, token).Err()
	return errors.Wrap(err, "release slot lock")
}
