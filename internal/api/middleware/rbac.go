package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userforge/user-api/internal/core/domain"
)

const permissionDeniedMessage = "User does not have permission to access this endpoint"

// RBAC permits continuation only when the authenticated user's role is in
// the allowed set. An absent user (Auth not run, or failed open) resolves to
// the same rejection: default-deny.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(CurrentUserKey).(*domain.User)
			if !ok || user == nil {
				return echo.NewHTTPError(http.StatusForbidden, permissionDeniedMessage)
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, permissionDeniedMessage)
			}
			return next(c)
		}
	}
}
