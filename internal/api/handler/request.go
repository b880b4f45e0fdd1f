package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-system/internal/api/middleware"
	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid payload")
	}
	return c.Validate(req)
}

// ctxIdentity returns the caller injected by the Auth middleware. Its
// absence means the route was wired without Auth.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}

// listParams reads q, sortBy, order, limit and offset from the query string.
func listParams(c echo.Context) (ports.ListParams, error) {
	p := ports.ListParams{
		Search: c.QueryParam("q"),
		SortBy: c.QueryParam("sortBy"),
		Order:  c.QueryParam("order"),
	}
	var limit int
	b := echo.QueryParamsBinder(c).
		Int("limit", &limit).
		Int("offset", &p.Offset)
	if err := b.BindError(); err != nil {
		return p, domain.NewValidationError("limit and offset must be integers")
	}
	if c.QueryParam("limit") != "" {
		p.Limit = &limit
	}
	return p, nil
}
