package handler

import "github.com/storerating/rating-system/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required,username"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address"  validate:"max=400"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// --- Stores & ratings ---

type createStoreRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Address string `json:"address" validate:"max=400"`
	OwnerID string `json:"ownerId"`
}

// submitRatingRequest takes a JSON number so fractional values can be
// rejected rather than truncated.
type submitRatingRequest struct {
	Rating *float64 `json:"rating" validate:"required"`
}

type savedRating struct {
	ID      string `json:"id"`
	Rating  int    `json:"rating"`
	StoreID string `json:"storeId"`
}

type submitRatingResponse struct {
	Message string      `json:"message"`
	Rating  savedRating `json:"rating"`
}

// --- Admin ---

// adminStoreRow is a store listing row without a viewer, so it carries no
// userRating.
type adminStoreRow struct {
	domain.Store
	AverageRating *float64 `json:"averageRating"`
	RatingCount   int64    `json:"ratingCount"`
}

func toAdminStoreRows(stores []domain.StoreAggregate) []adminStoreRow {
	rows := make([]adminStoreRow, len(stores))
	for i, s := range stores {
		rows[i] = adminStoreRow{Store: s.Store, AverageRating: s.AverageRating, RatingCount: s.RatingCount}
	}
	return rows
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required,username"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address"  validate:"max=400"`
	Role     string `json:"role"     validate:"omitempty,role"`
}

type createUserResponse struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}
