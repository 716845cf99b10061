package cache

import (
	"context"
	"time"

	"dataitjobs/internal/pkg/logger"

	"go.uber.org/zap"
)

// Tiered reads through the in-process cache first and the shared Redis
// cache second. Redis errors are logged and treated as misses.
type Tiered struct {
	local  *Memory
	shared *Redis
	logger *zap.Logger
}

func NewTiered(local *Memory, shared *Redis, log *zap.Logger) *Tiered {
	return &Tiered{local: local, shared: shared, logger: logger.OrNop(log)}
}

func (t *Tiered) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if t.local != nil {
		if ok, err := t.local.GetJSON(ctx, key, out); err == nil && ok {
			return true, nil
		}
	}
	if !t.shared.Available() {
		return false, nil
	}
	ok, err := t.shared.GetJSON(ctx, key, out)
	if err != nil {
		t.logger.Debug("shared cache read failed", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	if ok && t.local != nil {
		_ = t.local.SetJSON(ctx, key, out, 0)
	}
	return ok, nil
}

func (t *Tiered) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if t.local != nil {
		if err := t.local.SetJSON(ctx, key, value, ttl); err != nil {
			return err
		}
	}
	if err := t.shared.SetJSON(ctx, key, value, ttl); err != nil {
		t.logger.Debug("shared cache write failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	if t.local != nil {
		_ = t.local.Delete(ctx, key)
	}
	return t.shared.Delete(ctx, key)
}

func (t *Tiered) DeleteByPattern(ctx context.Context, pattern string) error {
	if t.local != nil {
		_ = t.local.DeleteByPattern(ctx, pattern)
	}
	return t.shared.DeleteByPattern(ctx, pattern)
}

func (t *Tiered) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	return t.shared.SetIfNotExists(ctx, key, value, ttl)
}
