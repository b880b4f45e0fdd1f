package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

// StoreHandler serves store browsing and the rating endpoints.
type StoreHandler struct {
	ratings ports.RatingService
}

func NewStoreHandler(ratings ports.RatingService) *StoreHandler {
	return &StoreHandler{ratings: ratings}
}

// List handles GET /api/stores. Every row carries the caller's own rating
// when one exists.
//
// @Summary      List stores with rating aggregates
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        q       query     string  false  "Case-insensitive search on name and address"
// @Param        sortBy  query     string  false  "name, email, address, createdAt, averageRating or ratingCount"
// @Param        order   query     string  false  "asc or desc"
// @Param        limit   query     int     false  "Page size (default 50)"
// @Param        offset  query     int     false  "Rows to skip"
// @Success      200     {array}   domain.StoreAggregate
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	params, err := listParams(c)
	if err != nil {
		return err
	}

	stores, err := h.ratings.ListStores(c.Request().Context(), ports.ListStoresInput{
		ListParams: params,
		ViewerID:   identity.UserID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stores)
}

// SubmitRating handles POST /api/stores/:storeId/rating. A second submission
// by the same user overwrites the first.
//
// @Summary      Submit or update a rating
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        storeId  path      string               true  "Store ID"
// @Param        body     body      submitRatingRequest  true  "Rating between 1 and 5"
// @Success      200      {object}  submitRatingResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /stores/{storeId}/rating [post]
func (h *StoreHandler) SubmitRating(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError("invalid payload")
	}
	if req.Rating == nil {
		return domain.ErrInvalidRatingValue
	}
	value, err := domain.RatingValueFromNumber(*req.Rating)
	if err != nil {
		return err
	}

	rating, err := h.ratings.SubmitRating(c.Request().Context(), identity.UserID, c.Param("storeId"), value)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, submitRatingResponse{
		Message: "Rating saved successfully",
		Rating:  savedRating{ID: rating.ID, Rating: rating.Value, StoreID: rating.StoreID},
	})
}

// MyRating handles GET /api/stores/:storeId/my-rating.
//
// @Summary      Get the caller's rating for a store
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        storeId  path      string  true  "Store ID"
// @Success      200      {object}  domain.Rating
// @Failure      404      {object}  errorResponse
// @Router       /stores/{storeId}/my-rating [get]
func (h *StoreHandler) MyRating(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rating, err := h.ratings.GetUserRating(c.Request().Context(), identity.UserID, c.Param("storeId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rating)
}

// OwnerRatings handles GET /api/stores/owner/me/ratings: the caller's stores
// with their averages and every rating they received.
//
// @Summary      Ratings of the owner's stores
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.OwnerStoreRollup
// @Failure      403  {object}  errorResponse
// @Router       /stores/owner/me/ratings [get]
func (h *StoreHandler) OwnerRatings(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rollup, err := h.ratings.OwnerRollup(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rollup)
}
