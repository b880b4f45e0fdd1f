package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/infrastructure/security"
)

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := security.NewJWTIssuer("secret")
	signed, err := tokens.Issue("user-1", domain.RoleAdmin, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c, rec := newContext("Bearer " + signed)

	called := false
	handler := Auth(tokens)(func(c echo.Context) error {
		called = true
		id := IdentityFrom(c)
		if id == nil || id.UserID != "user-1" {
			t.Fatalf("user id not set: %+v", id)
		}
		if id.Role != domain.RoleAdmin {
			t.Fatalf("role not set: %q", id.Role)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tokens := security.NewJWTIssuer("secret")
	expired, err := tokens.Issue("user-1", domain.RoleUser, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	foreign, err := security.NewJWTIssuer("other").Issue("user-1", domain.RoleUser, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", domain.ErrUnauthenticated},
		{"wrong scheme", "Token abc", domain.ErrUnauthenticated},
		{"empty bearer", "Bearer ", domain.ErrUnauthenticated},
		{"garbage token", "Bearer not-a-token", domain.ErrInvalidToken},
		{"foreign signature", "Bearer " + foreign, domain.ErrInvalidToken},
		{"expired", "Bearer " + expired, domain.ErrExpiredToken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(tc.header)
			handler := Auth(tokens)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			err := handler(c)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected an unauthenticated error, got %v", err)
			}
		})
	}
}
