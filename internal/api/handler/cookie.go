package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openalgo/auth-system/internal/api/middleware"
)

// CookieOptions carries the process-wide session cookie settings.
type CookieOptions struct {
	// Secure marks the cookie HTTPS-only.
	Secure bool
	// MaxAge is the cookie lifetime in seconds; it should track the token TTL.
	MaxAge int
}

// setSessionCookie stores the bearer token the same way the Authorization
// header would carry it: "Bearer " + token.
func setSessionCookie(c echo.Context, token string, opts CookieOptions) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "Bearer " + token,
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the cookie; the path must match the one used
// when setting it.
func clearSessionCookie(c echo.Context, opts CookieOptions) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
