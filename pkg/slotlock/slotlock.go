package slotlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "eventsync:slotlock:"

	defaultTTL          = 10 * time.Second
	defaultWait         = 2 * time.Second
	defaultPollInterval = 50 * time.Millisecond
)

var (
	// ErrLockTimeout возвращается, если лок не удалось взять за отведенное время
	ErrLockTimeout = errors.New("slotlock: lock wait timeout")

	// ErrLockBackend возвращается при ошибке Redis
	ErrLockBackend = errors.New("slotlock: backend error")
)

// удаляет ключ только если он принадлежит текущему владельцу
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReleaseFunc освобождает взятый лок
type ReleaseFunc func(ctx context.Context) error

// Key формирует ключ лока для площадки на дату
func Key(venueID string, date time.Time) string {
	return fmt.Sprintf("%s:%s", venueID, date.Format("2006-01-02"))
}

// RedisLocker распределенный лок на Redis (SET NX PX + освобождение по токену)
type RedisLocker struct {
	client       redis.Cmdable
	ttl          time.Duration
	wait         time.Duration
	pollInterval time.Duration
}

// NewRedisLocker создает лок; ttl - время жизни ключа, wait - сколько ждать освобождения
func NewRedisLocker(client redis.Cmdable, ttl, wait time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if wait < 0 {
		wait = defaultWait
	}
	return &RedisLocker{
		client:       client,
		ttl:          ttl,
		wait:         wait,
		pollInterval: defaultPollInterval,
	}
}

// Acquire берет лок по ключу, ожидая его освобождения не дольше wait
func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	fullKey := keyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: setnx %s: %w", ErrLockBackend, key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil {
					return fmt.Errorf("%w: release %s: %w", ErrLockBackend, key, err)
				}
				return nil
			}, nil
		}

		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrLockTimeout, key, ctx.Err())
		case <-time.After(l.pollInterval):
		}
	}
}

// NopLocker лок-заглушка для однонодовой конфигурации без Redis
// Сериализацию в этом случае обеспечивает только транзакция БД
type NopLocker struct{}

// Acquire всегда успешен
func (NopLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
