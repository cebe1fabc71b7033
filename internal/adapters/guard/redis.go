package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"volunteerhub/internal/domain"
)

const (
	keyPrefix  = "submission:"
	defaultTTL = 30 * time.Second
)

// releaseScript deletes the key only if it still holds this holder's token,
// so a release after TTL expiry cannot drop someone else's hold.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisGuard holds submissions in Redis so duplicates are rejected across replicas.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, keyPrefix+key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire submission %s: %w", key, err)
	}
	if !ok {
		return nil, domain.ErrDuplicateSubmission
	}
	return func() {
		// The request context may already be done when release runs.
		_ = releaseScript.Run(context.Background(), g.client, []string{keyPrefix + key}, token).Err()
	}, nil
}
