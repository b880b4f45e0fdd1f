package domain

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one user's score for one store. The (UserID, StoreID) pair is
// unique.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StoreID   string    `json:"storeId"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingWithRater is a rating joined with the display fields of its author.
type RatingWithRater struct {
	ID         string `json:"id"`
	StoreID    string `json:"-"`
	Value      int    `json:"rating"`
	RaterName  string `json:"raterName"`
	RaterEmail string `json:"raterEmail"`
}

// ValidateRatingValue rejects values outside [MinRating, MaxRating].
func ValidateRatingValue(v int) error {
	if v < MinRating || v > MaxRating {
		return ErrInvalidRatingValue
	}
	return nil
}

// RatingValueFromNumber converts a decoded JSON number into a rating value,
// rejecting fractions as well as out-of-range values.
func RatingValueFromNumber(f float64) (int, error) {
	if math.IsNaN(f) || f != math.Trunc(f) || f < MinRating || f > MaxRating {
		return 0, ErrInvalidRatingValue
	}
	return int(f), nil
}

// Average returns the arithmetic mean of values, or nil for an empty set.
func Average(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := float64(sum) / float64(len(values))
	return &avg
}
