package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const RevokedSessionKey = "session:revoked:"

// TokenBlacklist 已注销会话, keyed by token digest so raw tokens never reach redis
type TokenBlacklist struct {
	rdb redis.UniversalClient
}

func NewTokenBlacklist(rdb redis.UniversalClient) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb}
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return RevokedSessionKey + hex.EncodeToString(sum[:])
}

// Revoke 吊销会话直至其自然过期
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return b.rdb.Set(ctx, revokedKey(token), 1, ttl).Err()
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := b.rdb.Get(ctx, revokedKey(token)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
