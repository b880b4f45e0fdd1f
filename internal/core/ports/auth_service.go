package ports

import (
	"context"

	"github.com/storerating/rating-system/internal/core/domain"
)

// SignupInput carries a self-registration request.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
