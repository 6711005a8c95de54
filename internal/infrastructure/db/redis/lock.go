package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

const defaultLockTTL = 30 * time.Second

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by another request is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SettlementLocker serializes order placement per customer.
// Key format: lock:settle:<user_id>
type SettlementLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSettlementLocker creates a SettlementLocker. ttl bounds how long a
// crashed holder can block the customer.
func NewSettlementLocker(client *redis.Client, ttl time.Duration) *SettlementLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &SettlementLocker{client: client, ttl: ttl}
}

// Lock acquires the customer's settlement lock without waiting. A held lock
// yields domain.ErrSettlementInProgress.
func (l *SettlementLocker) Lock(ctx context.Context, userID int64) (func(context.Context) error, error) {
	key := l.key(userID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("settlement lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrSettlementInProgress
	}

	unlock := func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("settlement unlock: %w", err)
		}
		return nil
	}
	return unlock, nil
}

func (l *SettlementLocker) key(userID int64) string {
	return fmt.Sprintf("lock:settle:%d", userID)
}
