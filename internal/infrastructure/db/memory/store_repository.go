package memory

import (
	"cmp"
	"context"

	"github.com/google/uuid"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

type StoreRepository struct {
	db *DB
}

var _ ports.StoreRepository = (*StoreRepository)(nil)

func (r *StoreRepository) Create(_ context.Context, store *domain.Store) (*domain.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if store.OwnerID != "" {
		if _, ok := r.db.users[store.OwnerID]; !ok {
			return nil, domain.ErrUserNotFound
		}
	}
	s := *store
	s.ID = uuid.NewString()
	r.db.stores[s.ID] = &s
	r.db.storeOrder = append(r.db.storeOrder, s.ID)

	out := s
	return &out, nil
}

func (r *StoreRepository) FindByID(_ context.Context, id string) (*domain.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.stores[id]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	out := *s
	return &out, nil
}

func (r *StoreRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []*domain.Store{}
	for _, id := range r.db.storeOrder {
		if s := r.db.stores[id]; s.OwnerID == ownerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *StoreRepository) ListWithAggregates(_ context.Context, f ports.ListStoresFilter) ([]domain.StoreAggregate, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	values := make(map[string][]int)
	for _, id := range r.db.ratingOrder {
		rt := r.db.ratings[id]
		values[rt.StoreID] = append(values[rt.StoreID], rt.Value)
	}

	var rows []domain.StoreAggregate
	for _, id := range r.db.storeOrder {
		s := r.db.stores[id]
		if f.Search != "" && !containsFold(s.Name, f.Search) && !containsFold(s.Address, f.Search) &&
			!(f.SearchEmail && containsFold(s.Email, f.Search)) {
			continue
		}
		vs := values[s.ID]
		rows = append(rows, domain.StoreAggregate{
			Store:         *s,
			AverageRating: domain.Average(vs),
			RatingCount:   int64(len(vs)),
		})
	}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sortStable(idx, func(a, b int) int {
		ra, rb := rows[a], rows[b]
		switch f.SortBy {
		case "email":
			return compareFold(ra.Email, rb.Email)
		case "address":
			return compareFold(ra.Address, rb.Address)
		case "createdAt":
			return ra.CreatedAt.Compare(rb.CreatedAt)
		case "ratingCount":
			return cmp.Compare(ra.RatingCount, rb.RatingCount)
		case "averageRating":
			return compareAverage(ra.AverageRating, rb.AverageRating)
		default:
			return compareFold(ra.Name, rb.Name)
		}
	}, f.Desc)

	start, end := page(len(idx), f.Offset, f.Limit)
	out := make([]domain.StoreAggregate, 0, end-start)
	for _, i := range idx[start:end] {
		out = append(out, rows[i])
	}
	return out, nil
}

// compareAverage orders a missing average before any value.
func compareAverage(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

func (r *StoreRepository) Count(context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.stores)), nil
}
