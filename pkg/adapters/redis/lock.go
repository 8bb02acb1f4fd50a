package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
	"github.com/voltcraft/troubleshoot/pkg/ports"
)

// retryInterval is how often a contended lock is polled.
const retryInterval = 100 * time.Millisecond

// unlockScript deletes the key only if it still holds our token.
var unlockScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// Locker implements ports.DistributedLocker using Redis.
type Locker struct {
	client *backend.Client
	prefix string
}

// NewLocker creates a new Redis locker.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
	}
}

// Lock acquires a distributed lock for key using SET NX PX, polling until
// it succeeds or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := uuid.NewString()

	ok, err := l.tryAcquire(ctx, lockKey, token, ttl)
	if err != nil {
		return nil, err
	}

	if !ok {
		ticker := time.NewTicker(retryInterval)
		defer ticker.Stop()

		for !ok {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-ticker.C:
				ok, err = l.tryAcquire(ctx, lockKey, token, ttl)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	return func(ctx context.Context) error {
		return unlockScript.Run(ctx, l.client, []string{lockKey}, token).Err()
	}, nil
}

func (l *Locker) tryAcquire(ctx context.Context, lockKey, token string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis error acquiring lock: %w", err)
	}
	return ok, nil
}
