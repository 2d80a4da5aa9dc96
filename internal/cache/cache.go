package cache

import (
	"context"
	"encoding/json"
	"time"

	"pawket-be/internal/logger"
	"pawket-be/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache TTLs per entity type.
const (
	TTLProducts      = 1 * time.Hour
	TTLProductDetail = 30 * time.Minute
	TTLCategories    = 2 * time.Hour
	TTLOrderStats    = 10 * time.Minute
)

// Key builders. Keep patterns in sync with the Invalidate* helpers.
func KeyProducts() string                      { return "products:all" }
func KeyProduct(id string) string              { return "product:" + id }
func KeyProductsByCategory(slug string) string { return "products:category:" + slug }
func KeyCategories() string                    { return "categories:all" }
func KeyOrderStats() string                    { return "orders:stats" }

// Store is a thin JSON cache on top of redis. All operations are
// best-effort: a redis failure degrades to a cache miss and never
// propagates to the caller.
type Store struct {
	rdb    *redis.Client
	hits   metrics.Counter
	misses metrics.Counter
}

func New(addr, password string) *Store {
	if addr == "" {
		return nil
	}
	return &Store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return redis.ErrClosed
	}
	return s.rdb.Ping(ctx).Err()
}

// Get unmarshals the cached value into dest and reports whether it was found.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	if s == nil {
		return false
	}

	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.FromCtx(ctx).Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		s.misses.Inc()
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.FromCtx(ctx).Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		s.misses.Inc()
		return false
	}

	s.hits.Inc()
	return true
}

func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if s == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.FromCtx(ctx).Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := s.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.FromCtx(ctx).Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) Del(ctx context.Context, keys ...string) {
	if s == nil || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.FromCtx(ctx).Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidatePattern removes every key matching the glob pattern.
func (s *Store) InvalidatePattern(ctx context.Context, pattern string) {
	if s == nil {
		return
	}

	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.FromCtx(ctx).Warn("cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}

	s.Del(ctx, keys...)
}

func (s *Store) InvalidateProducts(ctx context.Context) {
	s.InvalidatePattern(ctx, "products:*")
	s.InvalidatePattern(ctx, "product:*")
}

func (s *Store) InvalidateCategories(ctx context.Context) {
	s.InvalidatePattern(ctx, "categories:*")
}

// Stats returns cumulative hit/miss counts since process start.
func (s *Store) Stats() (hits, misses uint64) {
	if s == nil {
		return 0, 0
	}
	return s.hits.Load(), s.misses.Load()
}
