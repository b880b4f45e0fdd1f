package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
	"github.com/storerating/rating-system/internal/infrastructure/db/memory"
)

func newAdminService(db *memory.DB) ports.AdminService {
	return NewAdminService(db.Users(), db.Stores(), db.Ratings(), plainHasher{}, zerolog.Nop())
}

func TestAdminService_CreateUser(t *testing.T) {
	svc := newAdminService(memory.New())
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, ports.CreateUserInput{
		Name: "Olivia Owner Of Stores", Email: "o@example.com", Password: validPassword, Role: "owner",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, u.Role)

	u, err = svc.CreateUser(ctx, ports.CreateUserInput{
		Name: "Alice Example Person", Email: "a@example.com", Password: validPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)

	_, err = svc.CreateUser(ctx, ports.CreateUserInput{
		Name: "Mallory Superuser Person", Email: "m@example.com", Password: validPassword, Role: "root",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdminService_ListUsers(t *testing.T) {
	db := memory.New()
	svc := newAdminService(db)
	seedUser(db, "Olivia Owner Of Stores", "o@shops.com", domain.RoleOwner)
	seedUser(db, "Alice Example Person", "a@example.com", domain.RoleUser)

	users, err := svc.ListUsers(context.Background(), ports.ListUsersInput{Role: "owner"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "o@shops.com", users[0].Email)

	users, err = svc.ListUsers(context.Background(), ports.ListUsersInput{ListParams: ports.ListParams{SortBy: "email", Order: "DESC"}})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "o@shops.com", users[0].Email)

	_, err = svc.ListUsers(context.Background(), ports.ListUsersInput{Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ListUsers(context.Background(), ports.ListUsersInput{ListParams: ports.ListParams{SortBy: "averageRating"}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdminService_GetUserDetail(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := newAdminService(db)
	ratings := newRatingService(db)

	owner := seedUser(db, "Olivia Owner Of Stores", "o@example.com", domain.RoleOwner)
	a := seedUser(db, "Alice Example Person", "a@example.com", domain.RoleUser)
	b := seedUser(db, "Bobby Example Person", "b@example.com", domain.RoleUser)
	cafe := seedStore(db, "Corner Cafe", owner.ID)
	deli := seedStore(db, "Deli", owner.ID)

	detail, err := svc.GetUserDetail(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Stores, 2)
	assert.Nil(t, detail.Rating)

	_, err = ratings.SubmitRating(ctx, a.ID, cafe.ID, 5)
	require.NoError(t, err)
	_, err = ratings.SubmitRating(ctx, b.ID, cafe.ID, 4)
	require.NoError(t, err)
	_, err = ratings.SubmitRating(ctx, a.ID, deli.ID, 3)
	require.NoError(t, err)

	detail, err = svc.GetUserDetail(ctx, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Rating)
	assert.InDelta(t, 4.0, *detail.Rating, 1e-9)

	plain, err := svc.GetUserDetail(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, plain.Stores)
	assert.Nil(t, plain.Rating)

	_, err = svc.GetUserDetail(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdminService_CreateStore(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := newAdminService(db)
	owner := seedUser(db, "Olivia Owner Of Stores", "o@example.com", domain.RoleOwner)
	user := seedUser(db, "Alice Example Person", "a@example.com", domain.RoleUser)

	s, err := svc.CreateStore(ctx, ports.CreateStoreInput{Name: " Corner Cafe ", Email: "Cafe@Example.com", OwnerID: owner.ID})
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", s.Name)
	assert.Equal(t, "cafe@example.com", s.Email)
	assert.Equal(t, owner.ID, s.OwnerID)

	tests := []struct {
		name string
		in   ports.CreateStoreInput
		want error
	}{
		{"missing name", ports.CreateStoreInput{Name: "  "}, domain.ErrValidation},
		{"bad email", ports.CreateStoreInput{Name: "Deli", Email: "nope"}, domain.ErrValidation},
		{"unknown owner", ports.CreateStoreInput{Name: "Deli", OwnerID: "ghost"}, domain.ErrNotFound},
		{"owner without owner role", ports.CreateStoreInput{Name: "Deli", OwnerID: user.ID}, domain.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateStore(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	n, err := db.Stores().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
