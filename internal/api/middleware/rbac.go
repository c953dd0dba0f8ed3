package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openalgo/auth-system/internal/core/domain"
)

// RequireTier enforces a minimum privilege tier on a route group. The Auth
// middleware must have run first; a missing user means the route was wired
// outside it and is rejected outright.
func RequireTier(required domain.Tier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUserKey).(*domain.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !user.Tier().AtLeast(required) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
