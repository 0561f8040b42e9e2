package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alanjal-marks-api/internal/service"
	"github.com/noah-isme/alanjal-marks-api/pkg/response"
)

// SettingsHandler exposes scoring-external toggles.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get godoc
// @Summary Read current settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}
