package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionRevokedPrefix = "session:revoked:"

// SessionRepository tracks revoked session IDs in Redis so a logout
// invalidates the cookie server-side for its remaining lifetime.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Revoke marks a session ID as revoked until the token would expire anyway.
func (r *SessionRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, sessionRevokedPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether the session ID has been revoked.
func (r *SessionRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if err := r.client.Get(ctx, sessionRevokedPrefix+jti).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("check session revocation: %w", err)
	}
	return true, nil
}
