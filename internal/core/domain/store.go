package domain

import "time"

// Store is a rateable location, optionally assigned to an owner.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	OwnerID   string    `json:"ownerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoreAggregate is a store together with its rating statistics.
// AverageRating is nil when RatingCount is zero.
type StoreAggregate struct {
	Store
	AverageRating *float64 `json:"averageRating"`
	RatingCount   int64    `json:"ratingCount"`
	// ViewerRating is the requesting user's own rating, null when they have
	// not rated the store.
	ViewerRating *int `json:"userRating"`
}

// OwnerStoreRollup is one store of an owner with every rating it received.
type OwnerStoreRollup struct {
	Store         Store             `json:"store"`
	AverageRating *float64          `json:"average"`
	Ratings       []RatingWithRater `json:"ratings"`
}

// DashboardSummary holds the admin dashboard counters.
type DashboardSummary struct {
	UserCount   int64 `json:"totalUsers"`
	StoreCount  int64 `json:"totalStores"`
	RatingCount int64 `json:"totalRatings"`
}
