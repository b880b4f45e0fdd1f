package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

type RatingRepository struct {
	db *DB
}

var _ ports.RatingRepository = (*RatingRepository)(nil)

func (r *RatingRepository) FindByUserAndStore(_ context.Context, userID, storeID string) (*domain.Rating, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.pairs[ratingPair{userID: userID, storeID: storeID}]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	out := *r.db.ratings[id]
	return &out, nil
}

// Create inserts a rating. The (user, store) pair is unique.
func (r *RatingRepository) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := ratingPair{userID: rating.UserID, storeID: rating.StoreID}
	if _, exists := r.db.pairs[key]; exists {
		return nil, domain.ErrDuplicateRating
	}
	rt := *rating
	rt.ID = uuid.NewString()
	r.db.ratings[rt.ID] = &rt
	r.db.ratingOrder = append(r.db.ratingOrder, rt.ID)
	r.db.pairs[key] = rt.ID

	out := rt
	return &out, nil
}

func (r *RatingRepository) UpdateValue(_ context.Context, id string, value int, at time.Time) (*domain.Rating, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rt, ok := r.db.ratings[id]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	rt.Value = value
	rt.UpdatedAt = at

	out := *rt
	return &out, nil
}

func (r *RatingRepository) ValuesByUser(_ context.Context, userID string, storeIDs []string) (map[string]int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make(map[string]int, len(storeIDs))
	for _, sid := range storeIDs {
		if id, ok := r.db.pairs[ratingPair{userID: userID, storeID: sid}]; ok {
			out[sid] = r.db.ratings[id].Value
		}
	}
	return out, nil
}

func (r *RatingRepository) ListByStores(_ context.Context, storeIDs []string) ([]domain.RatingWithRater, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	wanted := make(map[string]bool, len(storeIDs))
	for _, id := range storeIDs {
		wanted[id] = true
	}
	out := []domain.RatingWithRater{}
	for _, id := range r.db.ratingOrder {
		rt := r.db.ratings[id]
		if !wanted[rt.StoreID] {
			continue
		}
		row := domain.RatingWithRater{ID: rt.ID, StoreID: rt.StoreID, Value: rt.Value}
		if u, ok := r.db.users[rt.UserID]; ok {
			row.RaterName = u.user.Name
			row.RaterEmail = u.user.Email
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *RatingRepository) Count(context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.ratings)), nil
}
