// Package cache provides a Redis-backed implementation of the client's
// metadata cache, so tick sizes, neg-risk flags and fee rates survive
// restarts and are shared between instances.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/GoPolymarket/go-clob-client/internal/config"
	"github.com/GoPolymarket/go-clob-client/internal/pkg/metrics"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address is empty")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &RedisCache{client: rdb, ttl: ttl}, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func tickKey(tokenID string) string    { return "meta:tick:" + tokenID }
func negRiskKey(tokenID string) string { return "meta:negrisk:" + tokenID }
func feeRateKey(tokenID string) string { return "meta:feerate:" + tokenID }

func (r *RedisCache) GetTickSize(ctx context.Context, tokenID string) (clobtypes.TickSize, bool) {
	val, err := r.client.Get(ctx, tickKey(tokenID)).Result()
	if err != nil {
		metrics.MetadataLookups.WithLabelValues("tick_size", "miss").Inc()
		return "", false
	}
	tick, err := clobtypes.ParseTickSize(val)
	if err != nil {
		metrics.MetadataLookups.WithLabelValues("tick_size", "miss").Inc()
		return "", false
	}
	metrics.MetadataLookups.WithLabelValues("tick_size", "hit").Inc()
	return tick, true
}

func (r *RedisCache) SetTickSize(ctx context.Context, tokenID string, tick clobtypes.TickSize) {
	r.client.Set(ctx, tickKey(tokenID), string(tick), r.ttl)
}

func (r *RedisCache) GetNegRisk(ctx context.Context, tokenID string) (bool, bool) {
	val, err := r.client.Get(ctx, negRiskKey(tokenID)).Result()
	if err != nil {
		metrics.MetadataLookups.WithLabelValues("neg_risk", "miss").Inc()
		return false, false
	}
	metrics.MetadataLookups.WithLabelValues("neg_risk", "hit").Inc()
	return val == "1", true
}

func (r *RedisCache) SetNegRisk(ctx context.Context, tokenID string, negRisk bool) {
	val := "0"
	if negRisk {
		val = "1"
	}
	r.client.Set(ctx, negRiskKey(tokenID), val, r.ttl)
}

func (r *RedisCache) GetFeeRateBps(ctx context.Context, tokenID string) (int64, bool) {
	val, err := r.client.Get(ctx, feeRateKey(tokenID)).Result()
	if err != nil {
		metrics.MetadataLookups.WithLabelValues("fee_rate", "miss").Inc()
		return 0, false
	}
	bps, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		metrics.MetadataLookups.WithLabelValues("fee_rate", "miss").Inc()
		return 0, false
	}
	metrics.MetadataLookups.WithLabelValues("fee_rate", "hit").Inc()
	return bps, true
}

func (r *RedisCache) SetFeeRateBps(ctx context.Context, tokenID string, bps int64) {
	r.client.Set(ctx, feeRateKey(tokenID), strconv.FormatInt(bps, 10), r.ttl)
}
