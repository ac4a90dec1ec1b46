package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func ConnectRedis(addr, password string, db int, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.WithField("addr", addr).Info("connected to redis")
	return rdb, nil
}

// SubmissionGuard is a SETNX lock that expires on its own if the holder dies.
type SubmissionGuard struct {
	rdb    redis.Cmdable
	prefix string
}

func NewSubmissionGuard(rdb redis.Cmdable, prefix string) *SubmissionGuard {
	return &SubmissionGuard{rdb: rdb, prefix: prefix}
}

func (g *SubmissionGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, g.prefix+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire %s: %w", key, err)
	}
	return ok, nil
}

func (g *SubmissionGuard) Release(ctx context.Context, key string) error {
	if err := g.rdb.Del(ctx, g.prefix+key).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}
