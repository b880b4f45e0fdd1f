package ports

import (
	"context"

	"github.com/storerating/rating-system/internal/core/domain"
)

// CreateUserInput carries an admin-initiated account creation. An empty Role
// means domain.RoleUser.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// CreateStoreInput carries a new store. OwnerID is optional.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

// ListUsersInput carries the parameters for the admin user listing.
type ListUsersInput struct {
	ListParams
	Role string
}

type AdminService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context, input ListUsersInput) ([]*domain.User, error)
	GetUserDetail(ctx context.Context, id string) (*domain.UserDetail, error)
	CreateStore(ctx context.Context, input CreateStoreInput) (*domain.Store, error)
}
