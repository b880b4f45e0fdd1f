package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
	"github.com/storerating/rating-system/internal/infrastructure/metrics"
)

type adminService struct {
	users   ports.UserRepository
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	hasher  ports.PasswordHasher
	log     zerolog.Logger
	now     func() time.Time
}

// NewAdminService returns an AdminService implementation.
func NewAdminService(
	users ports.UserRepository,
	stores ports.StoreRepository,
	ratings ports.RatingRepository,
	hasher ports.PasswordHasher,
	log zerolog.Logger,
) ports.AdminService {
	return &adminService{
		users:   users,
		stores:  stores,
		ratings: ratings,
		hasher:  hasher,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *adminService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	user, err := createAccount(ctx, s.users, s.hasher, newAccount{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Address:  in.Address,
		Role:     role,
	}, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created by admin")
	return user, nil
}

func (s *adminService) ListUsers(ctx context.Context, in ports.ListUsersInput) ([]*domain.User, error) {
	w, err := resolveListParams(in.ListParams, ports.UserSortFields)
	if err != nil {
		return nil, err
	}
	var role domain.Role
	if in.Role != "" {
		if role, err = domain.ParseRole(in.Role); err != nil {
			return nil, err
		}
	}

	users, err := s.users.List(ctx, ports.ListUsersFilter{
		Search: strings.TrimSpace(in.Search),
		Role:   role,
		SortBy: w.sortBy,
		Desc:   w.desc,
		Limit:  w.limit,
		Offset: w.offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUserDetail returns the user with the stores they own. For owners, Rating
// is the mean over every rating of every owned store.
func (s *adminService) GetUserDetail(ctx context.Context, id string) (*domain.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.UserDetail{User: *user, Stores: []domain.Store{}}
	if user.Role != domain.RoleOwner {
		return detail, nil
	}

	stores, err := s.stores.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("user detail: %w", err)
	}
	if len(stores) == 0 {
		return detail, nil
	}
	ids := make([]string, len(stores))
	for i, st := range stores {
		ids[i] = st.ID
		detail.Stores = append(detail.Stores, *st)
	}
	ratings, err := s.ratings.ListByStores(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("user detail: %w", err)
	}
	detail.Rating = domain.Average(ratingValues(ratings))
	return detail, nil
}

// CreateStore adds a store. An owner, when given, must be an existing user
// with the owner role.
func (s *adminService) CreateStore(ctx context.Context, in ports.CreateStoreInput) (*domain.Store, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	address := strings.TrimSpace(in.Address)
	ownerID := strings.TrimSpace(in.OwnerID)

	if err := domain.ValidateStoreName(name); err != nil {
		return nil, err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateAddress(address); err != nil {
		return nil, err
	}

	if ownerID != "" {
		owner, err := s.users.FindByID(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("create store: owner: %w", err)
		}
		if owner.Role != domain.RoleOwner {
			return nil, domain.NewValidationError("assigned owner must have the owner role")
		}
	}

	now := s.now()
	store, err := s.stores.Create(ctx, &domain.Store{
		Name:      name,
		Email:     email,
		Address:   address,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	metrics.StoresCreatedTotal.Inc()
	s.log.Info().Str("store_id", store.ID).Str("owner_id", store.OwnerID).Msg("store created")
	return store, nil
}
