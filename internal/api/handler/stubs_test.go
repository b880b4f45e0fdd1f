package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-system/internal/api/middleware"
	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

type stubAuthService struct {
	signupFn         func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (string, *domain.User, error)
	changePasswordFn func(ctx context.Context, userID, oldPassword, newPassword string) error
	profileFn        func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, userID, oldPassword, newPassword)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

type stubRatingService struct {
	submitFn    func(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
	getFn       func(ctx context.Context, userID, storeID string) (*domain.Rating, error)
	listFn      func(ctx context.Context, in ports.ListStoresInput) ([]domain.StoreAggregate, error)
	rollupFn    func(ctx context.Context, ownerID string) ([]domain.OwnerStoreRollup, error)
	dashboardFn func(ctx context.Context) (*domain.DashboardSummary, error)
}

func (s *stubRatingService) SubmitRating(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	return s.submitFn(ctx, userID, storeID, value)
}

func (s *stubRatingService) GetUserRating(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	return s.getFn(ctx, userID, storeID)
}

func (s *stubRatingService) ListStores(ctx context.Context, in ports.ListStoresInput) ([]domain.StoreAggregate, error) {
	return s.listFn(ctx, in)
}

func (s *stubRatingService) OwnerRollup(ctx context.Context, ownerID string) ([]domain.OwnerStoreRollup, error) {
	return s.rollupFn(ctx, ownerID)
}

func (s *stubRatingService) DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	return s.dashboardFn(ctx)
}

type stubAdminService struct {
	createUserFn  func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	listUsersFn   func(ctx context.Context, in ports.ListUsersInput) ([]*domain.User, error)
	detailFn      func(ctx context.Context, id string) (*domain.UserDetail, error)
	createStoreFn func(ctx context.Context, in ports.CreateStoreInput) (*domain.Store, error)
}

func (s *stubAdminService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createUserFn(ctx, in)
}

func (s *stubAdminService) ListUsers(ctx context.Context, in ports.ListUsersInput) ([]*domain.User, error) {
	return s.listUsersFn(ctx, in)
}

func (s *stubAdminService) GetUserDetail(ctx context.Context, id string) (*domain.UserDetail, error) {
	return s.detailFn(ctx, id)
}

func (s *stubAdminService) CreateStore(ctx context.Context, in ports.CreateStoreInput) (*domain.Store, error) {
	return s.createStoreFn(ctx, in)
}

// newContext builds an echo context with the validator installed and, when
// identity is non-nil, the values the Auth middleware would have set.
func newContext(method, target, body string, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(middleware.UserIDKey, identity.UserID)
		c.Set(middleware.RoleKey, identity.Role)
	}
	return c, rec
}
