package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userforge/user-api/internal/api/metrics"
	"github.com/userforge/user-api/internal/core/ports"
)

// Context keys set by the middleware chain.
const (
	// CurrentUserKey holds the acting *domain.User resolved from the
	// bearer token.
	CurrentUserKey = "currentUser"
	// TargetUserKey holds the *domain.User addressed by a /users/:id path.
	TargetUserKey = "targetUser"
)

// TokenHeader is the response header carrying the reissued token. Clients
// are expected to persist the latest value.
const TokenHeader = "token"

const authFailedMessage = "Authentication Failed"

// Auth authenticates the bearer token, attaches the acting user to the
// request context, and reissues a fresh token on the response. A missing
// header, malformed bearer prefix, and invalid token are indistinguishable
// to the caller: all fail 401 with the same message.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.AuthFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, authFailedMessage)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, authFailedMessage)
			}

			user, fresh, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				metrics.AuthFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, authFailedMessage)
			}

			c.Set(CurrentUserKey, user)
			c.Response().Header().Set(TokenHeader, fresh)
			metrics.TokensReissuedTotal.Inc()

			return next(c)
		}
	}
}
