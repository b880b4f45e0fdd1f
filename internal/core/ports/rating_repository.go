package ports

import (
	"context"
	"time"

	"github.com/storerating/rating-system/internal/core/domain"
)

// RatingRepository persists ratings. The storage behind it must enforce
// uniqueness of (user, store); Create reports a violation as
// domain.ErrDuplicateRating.
type RatingRepository interface {
	FindByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error)
	Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	UpdateValue(ctx context.Context, id string, value int, at time.Time) (*domain.Rating, error)
	// ValuesByUser maps store id to userID's rating for the given stores.
	ValuesByUser(ctx context.Context, userID string, storeIDs []string) (map[string]int, error)
	// ListByStores returns every rating of the given stores joined with the
	// rater's name and email, oldest first.
	ListByStores(ctx context.Context, storeIDs []string) ([]domain.RatingWithRater, error)
	Count(ctx context.Context) (int64, error)
}
