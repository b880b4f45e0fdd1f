package domain

import (
	"errors"
	"math"
	"testing"
)

func TestAverage(t *testing.T) {
	if got := Average(nil); got != nil {
		t.Fatalf("empty set must have no average, got %v", *got)
	}

	got := Average([]int{2, 4, 4, 5})
	if got == nil || *got != 3.75 {
		t.Fatalf("expected 3.75, got %v", got)
	}
}

func TestRatingValueFromNumber(t *testing.T) {
	for v := MinRating; v <= MaxRating; v++ {
		got, err := RatingValueFromNumber(float64(v))
		if err != nil || got != v {
			t.Fatalf("RatingValueFromNumber(%d) = %d, %v", v, got, err)
		}
	}

	for _, f := range []float64{0, 6, -1, 3.5, 4.0001, math.NaN(), math.Inf(1), 1e300} {
		if _, err := RatingValueFromNumber(f); !errors.Is(err, ErrInvalidRatingValue) {
			t.Errorf("RatingValueFromNumber(%v): expected ErrInvalidRatingValue, got %v", f, err)
		}
	}
}

func TestRatingErrorsCarryCategory(t *testing.T) {
	if !errors.Is(ErrInvalidRatingValue, ErrValidation) {
		t.Error("ErrInvalidRatingValue must be a validation error")
	}
	if !errors.Is(ErrDuplicateRating, ErrConflict) {
		t.Error("ErrDuplicateRating must be a conflict")
	}
	if !errors.Is(ErrExpiredToken, ErrUnauthenticated) || !errors.Is(ErrInvalidToken, ErrUnauthenticated) {
		t.Error("token errors must map to ErrUnauthenticated")
	}
}
