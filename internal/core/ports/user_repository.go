package ports

import (
	"context"
	"time"

	"github.com/storerating/rating-system/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Search string      // optional: case-insensitive match on name, email or address
	Role   domain.Role // optional
	SortBy string      // one of UserSortFields
	Desc   bool
	Limit  int
	Offset int
}

// UserRepository persists accounts. Reads return the public view unless the
// method name says otherwise.
type UserRepository interface {
	// Create inserts a user with the given password hash. A taken email
	// yields domain.ErrEmailInUse.
	Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindCredentialsByEmail and FindCredentialsByID are the only reads that
	// include the password hash.
	FindCredentialsByEmail(ctx context.Context, email string) (*domain.UserCredentials, error)
	FindCredentialsByID(ctx context.Context, id string) (*domain.UserCredentials, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
