package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openalgo/auth-system/internal/core/domain"
	"github.com/openalgo/auth-system/internal/core/ports"
)

// SettingsHandler exposes the superadmin-only auth settings surface.
type SettingsHandler struct {
	settingsService ports.SettingsService
}

func NewSettingsHandler(settingsService ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// updateSettingsRequest is a partial field set; absent fields keep their
// stored value.
type updateSettingsRequest struct {
	RegularAuthEnabled *bool   `json:"regular_auth_enabled,omitempty"`
	GoogleAuthEnabled  *bool   `json:"google_auth_enabled,omitempty"`
	GoogleClientID     *string `json:"google_client_id,omitempty"`
	GoogleClientSecret *string `json:"google_client_secret,omitempty"`
}

// settingsResponse includes the client secret: the endpoint is reachable only
// by superadmins, who manage these credentials.
type settingsResponse struct {
	RegularAuthEnabled bool      `json:"regular_auth_enabled"`
	GoogleAuthEnabled  bool      `json:"google_auth_enabled"`
	GoogleClientID     string    `json:"google_client_id"`
	GoogleClientSecret string    `json:"google_client_secret"`
	UpdatedAt          time.Time `json:"updated_at"`
	UpdatedBy          int64     `json:"updated_by"`
}

// Get returns the current auth settings.
//
// @Summary      Get auth settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  settingsResponse
// @Failure      403  {object}  errorResponse
// @Router       /settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	settings, err := h.settingsService.Get(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

// Update applies a partial settings update.
//
// @Summary      Update auth settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSettingsRequest  true  "Fields to update"
// @Success      200   {object}  settingsResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /settings [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	settings, err := h.settingsService.Update(c.Request().Context(), actor, ports.UpdateSettingsInput{
		RegularAuthEnabled: req.RegularAuthEnabled,
		GoogleAuthEnabled:  req.GoogleAuthEnabled,
		GoogleClientID:     req.GoogleClientID,
		GoogleClientSecret: req.GoogleClientSecret,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

func toSettingsResponse(s *domain.AuthSettings) settingsResponse {
	return settingsResponse{
		RegularAuthEnabled: s.RegularAuthEnabled,
		GoogleAuthEnabled:  s.GoogleAuthEnabled,
		GoogleClientID:     s.GoogleClientID,
		GoogleClientSecret: s.GoogleClientSecret,
		UpdatedAt:          s.UpdatedAt,
		UpdatedBy:          s.UpdatedBy,
	}
}
