package sqldb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

func (m *ratingModel) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:        m.ID,
		UserID:    m.UserID,
		StoreID:   m.StoreID,
		Value:     m.Value,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type raterRow struct {
	ID         string
	StoreID    string
	Rating     int
	RaterName  string
	RaterEmail string
}

type RatingRepository struct {
	db *gorm.DB
}

var _ ports.RatingRepository = (*RatingRepository)(nil)

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) FindByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	var m ratingModel
	err := r.db.WithContext(ctx).Where("user_id = ? AND store_id = ?", userID, storeID).Take(&m).Error
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, storageErr("find rating", err)
	}
	return m.toDomain(), nil
}

// Create inserts a rating. The composite unique index on (user_id, store_id)
// turns a second insert for the same pair into domain.ErrDuplicateRating.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	m := ratingModel{
		ID:        uuid.NewString(),
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		Value:     rating.Value,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrDuplicateRating
		}
		return nil, storageErr("insert rating", err)
	}
	return m.toDomain(), nil
}

func (r *RatingRepository) UpdateValue(ctx context.Context, id string, value int, at time.Time) (*domain.Rating, error) {
	res := r.db.WithContext(ctx).Model(&ratingModel{}).Where("id = ?", id).
		Updates(map[string]any{"rating": value, "updated_at": at})
	if res.Error != nil {
		return nil, storageErr("update rating", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrRatingNotFound
	}

	var m ratingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, storageErr("reload rating", err)
	}
	return m.toDomain(), nil
}

func (r *RatingRepository) ValuesByUser(ctx context.Context, userID string, storeIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(storeIDs))
	if len(storeIDs) == 0 {
		return out, nil
	}
	var rows []ratingModel
	err := r.db.WithContext(ctx).Select("store_id", "rating").
		Where("user_id = ? AND store_id IN ?", userID, storeIDs).Find(&rows).Error
	if err != nil {
		return nil, storageErr("find user ratings", err)
	}
	for _, m := range rows {
		out[m.StoreID] = m.Value
	}
	return out, nil
}

func (r *RatingRepository) ListByStores(ctx context.Context, storeIDs []string) ([]domain.RatingWithRater, error) {
	out := []domain.RatingWithRater{}
	if len(storeIDs) == 0 {
		return out, nil
	}
	var rows []raterRow
	err := r.db.WithContext(ctx).Table("ratings AS r").
		Select("r.id, r.store_id, r.rating, COALESCE(u.name, '') AS rater_name, COALESCE(u.email, '') AS rater_email").
		Joins("LEFT JOIN users AS u ON u.id = r.user_id").
		Where("r.store_id IN ?", storeIDs).
		Order("r.created_at ASC, r.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("list store ratings", err)
	}
	for _, row := range rows {
		out = append(out, domain.RatingWithRater{
			ID:         row.ID,
			StoreID:    row.StoreID,
			Value:      row.Rating,
			RaterName:  row.RaterName,
			RaterEmail: row.RaterEmail,
		})
	}
	return out, nil
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&ratingModel{}).Count(&n).Error; err != nil {
		return 0, storageErr("count ratings", err)
	}
	return n, nil
}
