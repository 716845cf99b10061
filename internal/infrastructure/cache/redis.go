package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"dataitjobs/internal/config"
	"dataitjobs/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultTTL = 10 * time.Minute

var ErrRedisUnavailable = errors.New("redis unavailable")

// Redis is a JSON cache that degrades to a no-op when the server cannot be
// reached.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, ttl time.Duration, log *zap.Logger) *Redis {
	log = logger.OrNop(log)
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if strings.TrimSpace(cfg.Host) == "" {
		log.Info("redis not configured, shared cache disabled")
		return &Redis{logger: log, ttl: ttl}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, bypassing cache", zap.String("addr", cfg.Addr()), zap.Error(err))
		_ = client.Close()
		return &Redis{logger: log, ttl: ttl}
	}

	return &Redis{client: client, logger: log, ttl: ttl}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) Available() bool {
	return !r.isUnavailable()
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis unavailable, bypassing cache", zap.Error(err))
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return ErrRedisUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.isUnavailable() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.isUnavailable() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil {
			r.logger.Warn("redis delete failed", zap.String("key", k), zap.String("pattern", pattern), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// SetIfNotExists reports true when the key was set. Without Redis it always
// reports true so single-instance callers proceed.
func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if r.isUnavailable() {
		return true, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return false, err
	}
	return ok, nil
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}
