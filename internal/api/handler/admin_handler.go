package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-system/internal/core/ports"
)

// AdminHandler serves the admin-only endpoints.
type AdminHandler struct {
	admin   ports.AdminService
	ratings ports.RatingService
}

func NewAdminHandler(admin ports.AdminService, ratings ports.RatingService) *AdminHandler {
	return &AdminHandler{admin: admin, ratings: ratings}
}

// Dashboard handles GET /api/admin/dashboard.
//
// @Summary      Platform counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardSummary
// @Failure      403  {object}  errorResponse
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	summary, err := h.ratings.DashboardSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// CreateUser handles POST /api/admin/users. Any role may be assigned.
//
// @Summary      Create a user with a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  createUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.admin.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createUserResponse{ID: user.ID, Email: user.Email, Role: user.Role})
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q       query     string  false  "Case-insensitive search on name, email and address"
// @Param        role    query     string  false  "admin, owner or user"
// @Param        sortBy  query     string  false  "name, email, role, address or createdAt"
// @Param        order   query     string  false  "asc or desc"
// @Param        limit   query     int     false  "Page size (default 50)"
// @Param        offset  query     int     false  "Rows to skip"
// @Success      200     {array}   domain.User
// @Failure      400     {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return err
	}

	users, err := h.admin.ListUsers(c.Request().Context(), ports.ListUsersInput{
		ListParams: params,
		Role:       c.QueryParam("role"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/admin/users/:id.
//
// @Summary      User detail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.UserDetail
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	detail, err := h.admin.GetUserDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateStore handles POST /api/stores.
//
// @Summary      Create a store
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStoreRequest  true  "Store details"
// @Success      201   {object}  domain.Store
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /stores [post]
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req createStoreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	store, err := h.admin.CreateStore(c.Request().Context(), ports.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, store)
}

// ListStores handles GET /api/admin/stores. Search also matches the store
// email here.
//
// @Summary      List stores (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q       query     string  false  "Case-insensitive search on name, email and address"
// @Param        sortBy  query     string  false  "name, email, address, createdAt, averageRating or ratingCount"
// @Param        order   query     string  false  "asc or desc"
// @Param        limit   query     int     false  "Page size (default 50)"
// @Param        offset  query     int     false  "Rows to skip"
// @Success      200     {array}   adminStoreRow
// @Failure      400     {object}  errorResponse
// @Router       /admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return err
	}

	stores, err := h.ratings.ListStores(c.Request().Context(), ports.ListStoresInput{
		ListParams:   params,
		IncludeEmail: true,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAdminStoreRows(stores))
}
