package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
	"github.com/storerating/rating-system/internal/infrastructure/metrics"
)

type ratingService struct {
	users   ports.UserRepository
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	log     zerolog.Logger
	now     func() time.Time
}

// NewRatingService returns a RatingService implementation.
func NewRatingService(
	users ports.UserRepository,
	stores ports.StoreRepository,
	ratings ports.RatingRepository,
	log zerolog.Logger,
) ports.RatingService {
	return &ratingService{
		users:   users,
		stores:  stores,
		ratings: ratings,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SubmitRating creates the caller's rating for a store or overwrites the one
// already there. The unique (user, store) index is the real guard: a
// concurrent insert that wins the race is picked up and updated instead.
func (s *ratingService) SubmitRating(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	// 1. Reject bad values before any storage call.
	if err := domain.ValidateRatingValue(value); err != nil {
		return nil, err
	}

	// 2. The store must exist.
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	now := s.now()

	// 3. Look up then write.
	existing, err := s.ratings.FindByUserAndStore(ctx, userID, storeID)
	switch {
	case err == nil:
		return s.overwrite(ctx, existing, value, now, "updated")
	case !errors.Is(err, domain.ErrRatingNotFound):
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	created, err := s.ratings.Create(ctx, &domain.Rating{
		UserID:    userID,
		StoreID:   storeID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err == nil {
		s.record(created, "created")
		return created, nil
	}
	if !errors.Is(err, domain.ErrDuplicateRating) {
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	// 4. Lost the race to a concurrent insert for the same pair.
	existing, err = s.ratings.FindByUserAndStore(ctx, userID, storeID)
	if err != nil {
		return nil, fmt.Errorf("submit rating: resolve conflict: %w", err)
	}
	return s.overwrite(ctx, existing, value, now, "conflict_resolved")
}

func (s *ratingService) overwrite(ctx context.Context, r *domain.Rating, value int, now time.Time, outcome string) (*domain.Rating, error) {
	updated, err := s.ratings.UpdateValue(ctx, r.ID, value, now)
	if err != nil {
		return nil, fmt.Errorf("submit rating: update: %w", err)
	}
	s.record(updated, outcome)
	return updated, nil
}

func (s *ratingService) record(r *domain.Rating, outcome string) {
	metrics.RatingsSubmittedTotal.WithLabelValues(outcome).Inc()
	metrics.RatingValues.Observe(float64(r.Value))
	s.log.Info().
		Str("rating_id", r.ID).
		Str("store_id", r.StoreID).
		Str("user_id", r.UserID).
		Str("outcome", outcome).
		Msg("rating saved")
}

func (s *ratingService) GetUserRating(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	return s.ratings.FindByUserAndStore(ctx, userID, storeID)
}

// ListStores returns stores with their aggregates. When ViewerID is set,
// every row also carries that user's own rating.
func (s *ratingService) ListStores(ctx context.Context, in ports.ListStoresInput) ([]domain.StoreAggregate, error) {
	w, err := resolveListParams(in.ListParams, ports.StoreSortFields)
	if err != nil {
		return nil, err
	}

	rows, err := s.stores.ListWithAggregates(ctx, ports.ListStoresFilter{
		Search:      strings.TrimSpace(in.Search),
		SearchEmail: in.IncludeEmail,
		SortBy:      w.sortBy,
		Desc:        w.desc,
		Limit:       w.limit,
		Offset:      w.offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	if in.ViewerID == "" || len(rows) == 0 {
		return rows, nil
	}

	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	own, err := s.ratings.ValuesByUser(ctx, in.ViewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("list stores: viewer ratings: %w", err)
	}
	for i := range rows {
		if v, ok := own[rows[i].ID]; ok {
			v := v
			rows[i].ViewerRating = &v
		}
	}
	return rows, nil
}

// OwnerRollup lists the owner's stores, each with every rating it received.
func (s *ratingService) OwnerRollup(ctx context.Context, ownerID string) ([]domain.OwnerStoreRollup, error) {
	stores, err := s.stores.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("owner rollup: %w", err)
	}
	out := make([]domain.OwnerStoreRollup, 0, len(stores))
	if len(stores) == 0 {
		return out, nil
	}

	ids := make([]string, len(stores))
	for i, st := range stores {
		ids[i] = st.ID
	}
	ratings, err := s.ratings.ListByStores(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("owner rollup: %w", err)
	}
	byStore := make(map[string][]domain.RatingWithRater, len(stores))
	for _, r := range ratings {
		byStore[r.StoreID] = append(byStore[r.StoreID], r)
	}

	for _, st := range stores {
		rs := byStore[st.ID]
		if rs == nil {
			rs = []domain.RatingWithRater{}
		}
		out = append(out, domain.OwnerStoreRollup{
			Store:         *st,
			AverageRating: domain.Average(ratingValues(rs)),
			Ratings:       rs,
		})
	}
	return out, nil
}

func (s *ratingService) DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: users: %w", err)
	}
	stores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: stores: %w", err)
	}
	ratings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ratings: %w", err)
	}
	return &domain.DashboardSummary{UserCount: users, StoreCount: stores, RatingCount: ratings}, nil
}

func ratingValues(rs []domain.RatingWithRater) []int {
	vs := make([]int, len(rs))
	for i, r := range rs {
		vs[i] = r.Value
	}
	return vs
}
