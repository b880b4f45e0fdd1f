package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-system/internal/core/domain"
)

// RBAC enforces role-based access control. With no roles it only requires an
// authenticated caller.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.Authorize(IdentityFrom(c), allowedRoles...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
