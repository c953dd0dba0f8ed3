package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openalgo/auth-system/internal/api/metrics"
	"github.com/openalgo/auth-system/internal/core/ports"
)

// GoogleHandler exposes the external login entry points.
type GoogleHandler struct {
	googleService ports.GoogleAuthService
	cookieOpts    CookieOptions
}

func NewGoogleHandler(googleService ports.GoogleAuthService, cookieOpts CookieOptions) *GoogleHandler {
	return &GoogleHandler{googleService: googleService, cookieOpts: cookieOpts}
}

// Login redirects to the Google authorization endpoint.
//
// @Summary      Start Google login
// @Tags         auth
// @Success      302
// @Failure      403  {object}  errorResponse
// @Router       /auth/google/login [get]
func (h *GoogleHandler) Login(c echo.Context) error {
	url, err := h.googleService.LoginURL(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, url)
}

// Callback completes the code exchange and establishes the session cookie.
//
// @Summary      Google login callback
// @Tags         auth
// @Produce      json
// @Param        state  query  string  true  "Opaque state issued at login"
// @Param        code   query  string  true  "Authorization code"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/google/callback [get]
func (h *GoogleHandler) Callback(c echo.Context) error {
	state := c.QueryParam("state")
	code := c.QueryParam("code")

	signed, _, err := h.googleService.Callback(c.Request().Context(), state, code)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("google", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("google", "success").Inc()

	setSessionCookie(c, signed, h.cookieOpts)
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, tokenResponse{AccessToken: signed, TokenType: "bearer"})
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}
