package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openalgo/auth-system/internal/api/metrics"
	"github.com/openalgo/auth-system/internal/core/ports"
)

// ContextUserKey is where the resolved user is stashed in the echo context.
const ContextUserKey = "current_user"

// CookieName carries the bearer token between requests. Its value is
// "Bearer " + token, matching the Authorization header format.
const CookieName = "access_token"

// publicPaths bypass authentication. Root matches exactly; every other entry
// matches itself and everything below it.
var publicPaths = []string{
	"/",
	"/login",
	"/register",
	"/token",
	"/logout",
	"/static",
	"/docs",
	"/metrics",
	"/health",
	"/auth/google/login",
	"/auth/google/callback",
}

// Auth validates the bearer token from the access_token cookie (or the
// Authorization header for API clients) and injects the resolved user into
// the context. Browser clients without a valid token are redirected to
// /login; JSON clients receive a 401.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isPublicPath(c.Request().URL.Path) {
				return next(c)
			}

			raw := bearerToken(c)
			if raw == "" {
				return unauthorized(c, "Not authenticated")
			}

			user, err := auth.ResolveToken(c.Request().Context(), raw)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return unauthorized(c, "Invalid authentication credentials")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// bearerToken extracts the raw token, cookie first, then the Authorization
// header. Both carry the "Bearer " prefix.
func bearerToken(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return stripBearer(cookie.Value)
	}
	return stripBearer(c.Request().Header.Get("Authorization"))
}

func stripBearer(value string) string {
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func unauthorized(c echo.Context, detail string) error {
	if wantsJSON(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, detail)
	}
	return c.Redirect(http.StatusFound, "/login")
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
