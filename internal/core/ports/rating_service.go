package ports

import (
	"context"

	"github.com/storerating/rating-system/internal/core/domain"
)

// ListStoresInput carries the parameters for a store listing.
type ListStoresInput struct {
	ListParams
	// IncludeEmail makes Search also match the store email.
	IncludeEmail bool
	// ViewerID, when set, attaches that user's own rating to every row.
	ViewerID string
}

// RatingService is the rating ledger: one rating per (user, store) and the
// aggregates computed from them.
type RatingService interface {
	SubmitRating(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
	GetUserRating(ctx context.Context, userID, storeID string) (*domain.Rating, error)
	ListStores(ctx context.Context, input ListStoresInput) ([]domain.StoreAggregate, error)
	OwnerRollup(ctx context.Context, ownerID string) ([]domain.OwnerStoreRollup, error)
	DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)
}
