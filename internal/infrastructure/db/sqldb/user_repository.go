package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

// publicColumns leaves out password_hash.
var publicColumns = []string{"id", "name", "email", "role", "address", "created_at", "updated_at"}

var userOrderColumns = map[string]string{
	"name":      "LOWER(name)",
	"email":     "LOWER(email)",
	"role":      "role",
	"address":   "LOWER(address)",
	"createdAt": "created_at",
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      domain.Role(m.Role),
		Address:   m.Address,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type UserRepository struct {
	db *gorm.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	m := userModel{
		ID:           uuid.NewString(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: passwordHash,
		Role:         string(user.Role),
		Address:      user.Address,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrEmailInUse
		}
		return nil, storageErr("insert user", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Select(publicColumns).Where("id = ?", id).Take(&m).Error
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storageErr("find user", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindCredentialsByEmail(ctx context.Context, email string) (*domain.UserCredentials, error) {
	return r.findCredentials(ctx, "email = ?", email)
}

func (r *UserRepository) FindCredentialsByID(ctx context.Context, id string) (*domain.UserCredentials, error) {
	return r.findCredentials(ctx, "id = ?", id)
}

func (r *UserRepository) findCredentials(ctx context.Context, query string, arg string) (*domain.UserCredentials, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storageErr("find credentials", err)
	}
	return &domain.UserCredentials{User: *m.toDomain(), PasswordHash: m.PasswordHash}, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).
		Updates(map[string]any{"password_hash": passwordHash, "updated_at": at})
	if res.Error != nil {
		return storageErr("update password", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, error) {
	if f.Limit == 0 {
		return []*domain.User{}, nil
	}

	q := r.db.WithContext(ctx).Model(&userModel{}).Select(publicColumns)
	if f.Role != "" {
		q = q.Where("role = ?", string(f.Role))
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(address) LIKE ? ESCAPE '\')`, p, p, p)
	}

	col, ok := userOrderColumns[f.SortBy]
	if !ok {
		col = userOrderColumns["name"]
	}
	q = q.Order(fmt.Sprintf("%s %s, created_at ASC, id ASC", col, direction(f.Desc)))

	var rows []userModel
	if err := q.Limit(f.Limit).Offset(f.Offset).Find(&rows).Error; err != nil {
		return nil, storageErr("list users", err)
	}
	out := make([]*domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&userModel{}).Count(&n).Error; err != nil {
		return 0, storageErr("count users", err)
	}
	return n, nil
}
