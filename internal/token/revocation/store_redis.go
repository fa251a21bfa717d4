// Package revocation implements the token revocation list consumed by the
// token verifier. The Redis store is the production implementation so revoked
// tokens are rejected by every edge instance; the memory store backs tests
// and single-instance deployments.
package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	isRevokedDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "acont_edge_is_token_revoked_duration_ms",
		Help:    "Latency of token revocation checks in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	})
)

const (
	// Redis key prefix for revoked token ids.
	revokedTokenKeyPrefix = "edge:trl:jti:"
)

// RedisStore is a Redis-backed revocation list shared across edge instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed revocation list.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Revoke marks a token id as revoked until its natural expiry. The TTL should
// match the token's remaining lifetime so keys clean themselves up.
func (s *RedisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	key := revokedTokenKeyPrefix + jti
	// Key existence is the marker; the value is irrelevant.
	return s.client.Set(ctx, key, "1", ttl).Err()
}

// IsRevoked reports whether jti is on the revocation list. A missing key
// means not revoked (or already expired).
func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	start := time.Now()
	defer func() {
		isRevokedDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	if jti == "" {
		return false, nil
	}
	key := revokedTokenKeyPrefix + jti
	_, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
