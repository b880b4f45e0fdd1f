package ports

import (
	"context"
	"time"

	"github.com/storerating/rating-system/internal/core/domain"
)

// PasswordHasher is a one-way, salted password hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs and verifies bearer tokens carrying identity and role.
type TokenIssuer interface {
	Issue(userID string, role domain.Role, expiresAt time.Time) (string, error)
	// Verify fails with domain.ErrInvalidToken or domain.ErrExpiredToken.
	Verify(token string) (*domain.Identity, error)
}

// LoginLimiter counts failed logins per key (the normalized email) within a
// window. Once the limit of failures is recorded, Allow reports false until
// the window expires or Reset is called.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
