package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository keeps the ids of tokens that were revoked by logout.
// Entries expire together with the token itself.
type SessionRepository interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisSessionRepository struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisSessionRepository returns a no-op repository when rdb is nil, so the
// service keeps working without Redis (logout then only drops the token on
// the client side).
func NewRedisSessionRepository(rdb *redis.Client) SessionRepository {
	if rdb == nil {
		return noopSessionRepository{}
	}
	return &redisSessionRepository{rdb: rdb, prefix: "revoked_token:"}
}

func (r *redisSessionRepository) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := r.rdb.Set(ctx, r.prefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.rdb.Get(ctx, r.prefix+tokenID).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}

type noopSessionRepository struct{}

func (noopSessionRepository) Revoke(context.Context, string, time.Time) error {
	return nil
}

func (noopSessionRepository) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}
