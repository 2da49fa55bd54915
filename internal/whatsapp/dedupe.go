package whatsapp

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const dedupeKeyPrefix = "dedupe:msg:"

// Deduper remembers processed message ids so webhook redeliveries are
// handled once. A nil *Deduper claims everything.
type Deduper struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewRedisClient returns a client for cfg, or nil when dedupe is disabled.
func NewRedisClient(cfg DedupeConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewDeduper returns nil when client is nil.
func NewDeduper(client *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *Deduper {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Deduper{client: client, ttl: ttl, logger: logger}
}

// Claim reports whether the caller is the first to see id. Redis failures
// fail open.
func (d *Deduper) Claim(ctx context.Context, id string) bool {
	if d == nil || id == "" {
		return true
	}
	ok, err := d.client.SetNX(ctx, dedupeKeyPrefix+id, 1, d.ttl).Result()
	if err != nil {
		d.logger.Warnw("dedupe check failed, processing anyway", "message_id", id, "err", err)
		return true
	}
	if !ok {
		d.logger.Infow("duplicate delivery skipped", "message_id", id)
	}
	return ok
}
