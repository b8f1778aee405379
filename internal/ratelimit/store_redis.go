package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one sorted set of request timestamps per key, so all
// replicas share a window.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := s.now()
	cutoff := now.Add(-window)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff.UnixMicro(), 10))
	count := pipe.ZCard(ctx, key)
	oldest := pipe.ZRangeWithScores(ctx, key, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit window: %w", err)
	}

	reset := now.Add(window)
	if zs := oldest.Val(); len(zs) > 0 {
		reset = time.UnixMicro(int64(zs[0].Score)).Add(window)
	}
	if int(count.Val()) >= limit {
		return &Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: reset}, nil
	}

	add := s.client.TxPipeline()
	add.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMicro()), Member: uuid.NewString()})
	add.PExpire(ctx, key, window)
	if _, err := add.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit record: %w", err)
	}
	return &Result{Allowed: true, Limit: limit, Remaining: limit - int(count.Val()) - 1, ResetAt: reset}, nil
}
