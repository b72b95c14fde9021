// AngelaMos | 2026
// revocation.go

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationPrefix = "auth:revoked:"

// Revocations is a Redis-backed deny list of access token IDs. Entries
// expire together with the token they block.
type Revocations struct {
	redis *redis.Client
}

func NewRevocations(rdb *redis.Client) *Revocations {
	return &Revocations{redis: rdb}
}

func (r *Revocations) Revoke(
	ctx context.Context,
	jti string,
	expiresAt time.Time,
) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := r.redis.Set(ctx, revocationPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (r *Revocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.redis.Exists(ctx, revocationPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}

	return exists > 0, nil
}
