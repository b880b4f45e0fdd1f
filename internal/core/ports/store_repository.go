package ports

import (
	"context"

	"github.com/storerating/rating-system/internal/core/domain"
)

// ListStoresFilter carries the query parameters for listing stores with
// their rating aggregates.
type ListStoresFilter struct {
	Search string // optional: case-insensitive substring
	// SearchEmail extends Search to the store email (admin listings).
	SearchEmail bool
	SortBy      string // one of StoreSortFields
	Desc        bool
	Limit       int
	Offset      int
}

// StoreRepository persists stores and computes their aggregates.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Store, error)
	// ListWithAggregates returns one row per matching store with the
	// average and count of its ratings. Ties in the sort key keep creation
	// order.
	ListWithAggregates(ctx context.Context, filter ListStoresFilter) ([]domain.StoreAggregate, error)
	Count(ctx context.Context) (int64, error)
}
