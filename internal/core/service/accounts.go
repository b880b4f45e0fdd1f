package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
	"github.com/storerating/rating-system/internal/infrastructure/metrics"
)

var validate = validator.New()

func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return domain.NewValidationError("please provide a valid email address")
	}
	return nil
}

type newAccount struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     domain.Role
}

// createAccount validates and stores a new account. Every rule is checked
// before the repository is touched.
func createAccount(
	ctx context.Context,
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	in newAccount,
	now time.Time,
) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	address := strings.TrimSpace(in.Address)

	if err := domain.ValidateUserName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := domain.ValidateAddress(address); err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, domain.NewValidationError("invalid role")
	}

	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:      name,
		Email:     email,
		Role:      in.Role,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := repo.Create(ctx, user, hash)
	if err != nil {
		return nil, err
	}
	metrics.UsersCreatedTotal.WithLabelValues(string(created.Role)).Inc()
	return created, nil
}

type listWindow struct {
	sortBy string
	desc   bool
	limit  int
	offset int
}

// resolveListParams applies defaults to p and rejects sort keys outside
// allowed, unknown orders and negative windows.
func resolveListParams(p ports.ListParams, allowed []string) (listWindow, error) {
	w := listWindow{sortBy: ports.DefaultSortBy, limit: ports.DefaultLimit, offset: p.Offset}

	if p.SortBy != "" {
		ok := false
		for _, f := range allowed {
			if f == p.SortBy {
				ok = true
				break
			}
		}
		if !ok {
			return w, domain.NewValidationError(fmt.Sprintf("invalid sortBy %q: must be one of %s", p.SortBy, strings.Join(allowed, ", ")))
		}
		w.sortBy = p.SortBy
	}

	switch strings.ToLower(p.Order) {
	case "", "asc":
	case "desc":
		w.desc = true
	default:
		return w, domain.NewValidationError(fmt.Sprintf("invalid order %q: must be asc or desc", p.Order))
	}

	if p.Limit != nil {
		if *p.Limit < 0 {
			return w, domain.NewValidationError("limit cannot be negative")
		}
		w.limit = *p.Limit
	}
	if p.Offset < 0 {
		return w, domain.NewValidationError("offset cannot be negative")
	}
	return w, nil
}
