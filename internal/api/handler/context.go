package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openalgo/auth-system/internal/api/middleware"
	"github.com/openalgo/auth-system/internal/core/domain"
)

// currentUser extracts the user resolved by the Auth middleware. Its absence
// means the route was registered outside the middleware — reject with 401
// rather than proceeding unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// wantsJSON reports whether the client asked for a JSON response; everything
// else is treated as a browser and answered with redirects.
func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
