package presence

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// RedisRegistry is the production Registry backed by a shared Redis set.
// SADD/SREM/SMEMBERS give the single-key atomicity the presence contract
// requires across gateway instances.
type RedisRegistry struct {
	client redis.Cmdable
}

// NewRedis constructs a Redis-backed registry. The client lifecycle is
// managed externally.
func NewRedis(client redis.Cmdable) *RedisRegistry {
	return &RedisRegistry{client: client}
}

func (r *RedisRegistry) MarkOnline(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("presence: username is required")
	}
	return r.client.SAdd(ctx, Key, username).Err()
}

func (r *RedisRegistry) MarkOffline(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("presence: username is required")
	}
	return r.client.SRem(ctx, Key, username).Err()
}

func (r *RedisRegistry) ListOnline(ctx context.Context) ([]string, error) {
	members, err := r.client.SMembers(ctx, Key).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(members)
	return members, nil
}
