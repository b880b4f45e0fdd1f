package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

var viewer = &domain.Identity{UserID: "u1", Role: domain.RoleUser}

func TestStoreHandler_List_PassesQuery(t *testing.T) {
	var got ports.ListStoresInput
	stub := &stubRatingService{
		listFn: func(_ context.Context, in ports.ListStoresInput) ([]domain.StoreAggregate, error) {
			got = in
			return []domain.StoreAggregate{{Store: domain.Store{ID: "s1", Name: "Corner Cafe"}}}, nil
		},
	}
	h := NewStoreHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/stores?q=cafe&sortBy=averageRating&order=desc&limit=10&offset=5", "", viewer)
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "cafe", got.Search)
	assert.Equal(t, "averageRating", got.SortBy)
	assert.Equal(t, "desc", got.Order)
	require.NotNil(t, got.Limit)
	assert.Equal(t, 10, *got.Limit)
	assert.Equal(t, 5, got.Offset)
	assert.Equal(t, "u1", got.ViewerID)
	assert.False(t, got.IncludeEmail)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0]["averageRating"])
	require.Contains(t, rows[0], "userRating")
	assert.Nil(t, rows[0]["userRating"])
}

func TestStoreHandler_List_NoLimitMeansDefault(t *testing.T) {
	stub := &stubRatingService{
		listFn: func(_ context.Context, in ports.ListStoresInput) ([]domain.StoreAggregate, error) {
			assert.Nil(t, in.Limit)
			return nil, nil
		},
	}
	h := NewStoreHandler(stub)

	c, _ := newContext(http.MethodGet, "/api/stores", "", viewer)
	require.NoError(t, h.List(c))
}

func TestStoreHandler_List_BadLimit(t *testing.T) {
	h := NewStoreHandler(&stubRatingService{})

	c, _ := newContext(http.MethodGet, "/api/stores?limit=ten", "", viewer)
	assert.ErrorIs(t, h.List(c), domain.ErrValidation)
}

func TestStoreHandler_SubmitRating(t *testing.T) {
	stub := &stubRatingService{
		submitFn: func(_ context.Context, userID, storeID string, value int) (*domain.Rating, error) {
			return &domain.Rating{ID: "r1", UserID: userID, StoreID: storeID, Value: value}, nil
		},
	}
	h := NewStoreHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/stores/s1/rating", `{"rating":4}`, viewer)
	c.SetParamNames("storeId")
	c.SetParamValues("s1")

	require.NoError(t, h.SubmitRating(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp submitRatingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Rating saved successfully", resp.Message)
	assert.Equal(t, savedRating{ID: "r1", Rating: 4, StoreID: "s1"}, resp.Rating)
}

func TestStoreHandler_SubmitRating_InvalidValues(t *testing.T) {
	stub := &stubRatingService{
		submitFn: func(context.Context, string, string, int) (*domain.Rating, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	h := NewStoreHandler(stub)

	for _, body := range []string{`{}`, `{"rating":0}`, `{"rating":6}`, `{"rating":3.5}`, `{"rating":"4"}`} {
		t.Run(body, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/stores/s1/rating", body, viewer)
			c.SetParamNames("storeId")
			c.SetParamValues("s1")
			assert.ErrorIs(t, h.SubmitRating(c), domain.ErrValidation)
		})
	}
}

func TestStoreHandler_MyRating_NotFound(t *testing.T) {
	stub := &stubRatingService{
		getFn: func(context.Context, string, string) (*domain.Rating, error) {
			return nil, domain.ErrRatingNotFound
		},
	}
	h := NewStoreHandler(stub)

	c, _ := newContext(http.MethodGet, "/api/stores/s1/my-rating", "", viewer)
	c.SetParamNames("storeId")
	c.SetParamValues("s1")
	assert.ErrorIs(t, h.MyRating(c), domain.ErrNotFound)
}

func TestStoreHandler_OwnerRatings(t *testing.T) {
	avg := 4.5
	stub := &stubRatingService{
		rollupFn: func(_ context.Context, ownerID string) ([]domain.OwnerStoreRollup, error) {
			assert.Equal(t, "o1", ownerID)
			return []domain.OwnerStoreRollup{{
				Store:         domain.Store{ID: "s1"},
				AverageRating: &avg,
				Ratings:       []domain.RatingWithRater{},
			}}, nil
		},
	}
	h := NewStoreHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/stores/owner/me/ratings", "", &domain.Identity{UserID: "o1", Role: domain.RoleOwner})
	require.NoError(t, h.OwnerRatings(c))
	assert.JSONEq(t, `[{"store":{"id":"s1","name":"","createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"},"average":4.5,"ratings":[]}]`, rec.Body.String())
}
