package limiter

import (
	"context"
	"fmt"
	"time"

	"theinsight/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store: подмножество команд Redis, нужное лимитеру. *redis.Client его реализует.
type Store interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter: счётчик запросов с фиксированным окном в Redis.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	prefix string
}

func New(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window, prefix: "ratelimit"}
}

// NewRedisClient создаёт клиента и проверяет соединение.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Allow засчитывает запрос по ключу. При недоступном Redis запрос пропускается.
func (l *Limiter) Allow(ctx context.Context, key string) Result {
	res := Result{Allowed: true, Limit: l.limit, Remaining: l.limit}
	k := fmt.Sprintf("%s:%s", l.prefix, key)

	n, err := l.store.Incr(ctx, k).Result()
	if err != nil {
		logger.WithCtx(ctx).Warn("Redis недоступен, лимит не применён", zap.String("key", k), zap.Error(err))
		return res
	}
	if n == 1 {
		if err := l.store.Expire(ctx, k, l.window).Err(); err != nil {
			logger.WithCtx(ctx).Warn("Не удалось выставить TTL лимита", zap.String("key", k), zap.Error(err))
		}
	}

	if n > int64(l.limit) {
		res.Allowed = false
		res.Remaining = 0
		res.RetryAfter = l.window
		if ttl, err := l.store.TTL(ctx, k).Result(); err == nil && ttl > 0 {
			res.RetryAfter = ttl
		}
		return res
	}
	res.Remaining = l.limit - int(n)
	return res
}
