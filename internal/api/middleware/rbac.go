package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/fintrack/fintrack-api/internal/core/domain"
)

// RBAC allows the request through only when the authenticated principal's
// role is one of allowedRoles. Anything else surfaces domain.ErrForbidden,
// which the central error handler renders as 403.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
