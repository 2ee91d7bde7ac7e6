package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// TokenStore tracks revoked session tokens in Redis. Logout writes the raw
// token with a TTL matching the token's remaining lifetime; after that the
// JWT has expired anyway and the key is not needed.
type TokenStore struct {
	rdb *redis.Client
}

// NewTokenStore creates a new TokenStore
func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

// Revoke invalidates a token for ttl
func (s *TokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return s.rdb.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err()
}

// IsRevoked reports whether a token has been invalidated by logout
func (s *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
