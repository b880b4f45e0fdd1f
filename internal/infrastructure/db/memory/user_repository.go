package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

type UserRepository struct {
	db *DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, taken := r.db.emails[user.Email]; taken {
		return nil, domain.ErrEmailInUse
	}
	rec := &userRecord{user: *user, hash: passwordHash}
	rec.user.ID = uuid.NewString()
	r.db.users[rec.user.ID] = rec
	r.db.userOrder = append(r.db.userOrder, rec.user.ID)
	r.db.emails[rec.user.Email] = rec.user.ID

	out := rec.user
	return &out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rec, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := rec.user
	return &out, nil
}

func (r *UserRepository) FindCredentialsByEmail(_ context.Context, email string) (*domain.UserCredentials, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	rec := r.db.users[id]
	return &domain.UserCredentials{User: rec.user, PasswordHash: rec.hash}, nil
}

func (r *UserRepository) FindCredentialsByID(_ context.Context, id string) (*domain.UserCredentials, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rec, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.UserCredentials{User: rec.user, PasswordHash: rec.hash}, nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id, passwordHash string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rec, ok := r.db.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	rec.hash = passwordHash
	rec.user.UpdatedAt = at
	return nil
}

func (r *UserRepository) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var matched []domain.User
	for _, id := range r.db.userOrder {
		u := r.db.users[id].user
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" && !containsFold(u.Name, f.Search) && !containsFold(u.Email, f.Search) && !containsFold(u.Address, f.Search) {
			continue
		}
		matched = append(matched, u)
	}

	idx := make([]int, len(matched))
	for i := range idx {
		idx[i] = i
	}
	sortStable(idx, func(a, b int) int {
		ua, ub := matched[a], matched[b]
		switch f.SortBy {
		case "email":
			return compareFold(ua.Email, ub.Email)
		case "role":
			return compareFold(string(ua.Role), string(ub.Role))
		case "address":
			return compareFold(ua.Address, ub.Address)
		case "createdAt":
			return ua.CreatedAt.Compare(ub.CreatedAt)
		default:
			return compareFold(ua.Name, ub.Name)
		}
	}, f.Desc)

	start, end := page(len(idx), f.Offset, f.Limit)
	out := make([]*domain.User, 0, end-start)
	for _, i := range idx[start:end] {
		u := matched[i]
		out = append(out, &u)
	}
	return out, nil
}

func (r *UserRepository) Count(context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.users)), nil
}
