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

const storeColumns = "s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at"

var storeOrderColumns = map[string]string{
	"name":        "LOWER(s.name)",
	"email":       "LOWER(s.email)",
	"address":     "LOWER(s.address)",
	"createdAt":   "s.created_at",
	"ratingCount": "COUNT(r.id)",
}

func (m *storeModel) toDomain() domain.Store {
	s := domain.Store{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Address:   m.Address,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
	if m.OwnerID != nil {
		s.OwnerID = *m.OwnerID
	}
	return s
}

type storeAggregateRow struct {
	ID            string
	Name          string
	Email         string
	Address       string
	OwnerID       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AverageRating *float64
	RatingCount   int64
}

type StoreRepository struct {
	db *gorm.DB
}

var _ ports.StoreRepository = (*StoreRepository)(nil)

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	m := storeModel{
		ID:        uuid.NewString(),
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
	if store.OwnerID != "" {
		owner := store.OwnerID
		m.OwnerID = &owner
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, storageErr("insert store", err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	var m storeModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, storageErr("find store", err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Store, error) {
	var rows []storeModel
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").Find(&rows).Error
	if err != nil {
		return nil, storageErr("list owner stores", err)
	}
	out := make([]*domain.Store, 0, len(rows))
	for i := range rows {
		s := rows[i].toDomain()
		out = append(out, &s)
	}
	return out, nil
}

// ListWithAggregates LEFT JOINs ratings so stores without any still appear,
// with a NULL average and a zero count.
func (r *StoreRepository) ListWithAggregates(ctx context.Context, f ports.ListStoresFilter) ([]domain.StoreAggregate, error) {
	if f.Limit == 0 {
		return []domain.StoreAggregate{}, nil
	}

	q := r.db.WithContext(ctx).Table("stores AS s").
		Select(storeColumns + ", CAST(AVG(r.rating) AS DOUBLE PRECISION) AS average_rating, COUNT(r.id) AS rating_count").
		Joins("LEFT JOIN ratings AS r ON r.store_id = s.id").
		Group(storeColumns)

	if f.Search != "" {
		p := likePattern(f.Search)
		if f.SearchEmail {
			q = q.Where(`(LOWER(s.name) LIKE ? ESCAPE '\' OR LOWER(s.address) LIKE ? ESCAPE '\' OR LOWER(s.email) LIKE ? ESCAPE '\')`, p, p, p)
		} else {
			q = q.Where(`(LOWER(s.name) LIKE ? ESCAPE '\' OR LOWER(s.address) LIKE ? ESCAPE '\')`, p, p)
		}
	}

	dir := direction(f.Desc)
	var order string
	if f.SortBy == "averageRating" {
		// Stores without ratings come first ascending and last descending.
		order = fmt.Sprintf("CASE WHEN AVG(r.rating) IS NULL THEN 0 ELSE 1 END %s, AVG(r.rating) %s", dir, dir)
	} else {
		col, ok := storeOrderColumns[f.SortBy]
		if !ok {
			col = storeOrderColumns["name"]
		}
		order = col + " " + dir
	}
	q = q.Order(order + ", s.created_at ASC, s.id ASC")

	var rows []storeAggregateRow
	if err := q.Limit(f.Limit).Offset(f.Offset).Scan(&rows).Error; err != nil {
		return nil, storageErr("aggregate stores", err)
	}

	out := make([]domain.StoreAggregate, 0, len(rows))
	for _, row := range rows {
		m := storeModel{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Address:   row.Address,
			OwnerID:   row.OwnerID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
		out = append(out, domain.StoreAggregate{
			Store:         m.toDomain(),
			AverageRating: row.AverageRating,
			RatingCount:   row.RatingCount,
		})
	}
	return out, nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&storeModel{}).Count(&n).Error; err != nil {
		return 0, storageErr("count stores", err)
	}
	return n, nil
}
