package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

// Context keys set by Auth.
const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// Auth verifies the bearer token and injects the caller's identity into the
// context. A missing or malformed header is treated as no identity.
func Auth(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrUnauthenticated
			}

			identity, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(UserIDKey, identity.UserID)
			c.Set(RoleKey, identity.Role)

			return next(c)
		}
	}
}

// IdentityFrom returns the identity Auth stored on c, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	userID, _ := c.Get(UserIDKey).(string)
	role, _ := c.Get(RoleKey).(domain.Role)
	if userID == "" {
		return nil
	}
	return &domain.Identity{UserID: userID, Role: role}
}
