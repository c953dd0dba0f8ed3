package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openalgo/auth-system/internal/api/metrics"
	"github.com/openalgo/auth-system/internal/core/ports"
)

// AuthHandler exposes registration, login, logout and the current-user
// dashboard surface.
type AuthHandler struct {
	authService ports.AuthService
	cookieOpts  CookieOptions
}

func NewAuthHandler(authService ports.AuthService, cookieOpts CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookieOpts: cookieOpts}
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(user.RoleName).Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Token authenticates credentials and returns a bearer token payload.
//
// @Summary      Issue an access token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  errorResponse
// @Router       /token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("password", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("password", "success").Inc()

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: signed, TokenType: "bearer"})
}

// Login authenticates credentials and establishes the session cookie.
// Browser clients are redirected to the dashboard; JSON clients receive the
// token payload alongside the cookie.
//
// @Summary      Login and set the session cookie
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("password", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("password", "success").Inc()

	setSessionCookie(c, signed, h.cookieOpts)
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, tokenResponse{AccessToken: signed, TokenType: "bearer"})
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      302
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	clearSessionCookie(c, h.cookieOpts)
	if wantsJSON(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusFound, "/login")
}

// Dashboard returns the authenticated user's own profile and capabilities.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard [get]
func (h *AuthHandler) Dashboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		User:         toUserResponse(user),
		Role:         user.RoleName,
		IsAdmin:      user.IsAdmin(),
		IsSuperadmin: user.IsSuperadmin(),
	})
}
