package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userforge/user-api/internal/api/middleware"
	"github.com/userforge/user-api/internal/core/domain"
)

// currentUser extracts the acting user attached by the Auth middleware.
// Absence means the middleware chain did not run for this route; fail closed
// rather than dereferencing a nil user in the handler.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.CurrentUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return user, nil
}

// targetUser extracts the entity loaded by the RetrieveUser middleware for
// /users/:id routes. Distinct from the acting user.
func targetUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.TargetUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return user, nil
}
