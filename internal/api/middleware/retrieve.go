package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/userforge/user-api/internal/core/ports"
)

const userNotFoundMessage = "User not found"

// RetrieveUser loads the user addressed by the :id path parameter and
// attaches it to the request context. Downstream steps operate on this
// record, not on the raw path parameter, so there is no second lookup
// between authorization and mutation.
func RetrieveUser(repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := strconv.ParseUint(c.Param("id"), 10, 32)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, userNotFoundMessage)
			}

			user, err := repo.FindByID(c.Request().Context(), uint(id))
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, userNotFoundMessage)
			}

			c.Set(TargetUserKey, user)
			return next(c)
		}
	}
}
