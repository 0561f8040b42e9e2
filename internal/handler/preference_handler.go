package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alanjal-marks-api/internal/middleware"
	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/service"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
	"github.com/noah-isme/alanjal-marks-api/pkg/response"
)

// PreferenceHandler exposes per-user week/class selection memory.
type PreferenceHandler struct {
	preferences *service.PreferenceService
}

// NewPreferenceHandler constructs PreferenceHandler.
func NewPreferenceHandler(preferences *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

func scopeFromQuery(c *gin.Context) (int, int, error) {
	semester, err := strconv.Atoi(c.DefaultQuery("semester", "1"))
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2")
	}
	quarter, err := strconv.Atoi(c.DefaultQuery("quarter", "1"))
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "quarter must be 1 or 2")
	}
	return semester, quarter, nil
}

// Get godoc
// @Summary Read the saved week/class selection for a scope
// @Tags Preferences
// @Produce json
// @Param semester query int false "Semester (1 or 2)"
// @Param quarter query int false "Quarter (1 or 2)"
// @Success 200 {object} response.Envelope
// @Router /preferences [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	semester, quarter, err := scopeFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	pref, err := h.preferences.Get(c.Request.Context(), claims.UserID, semester, quarter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pref)
}

type setPreferenceRequest struct {
	WeekID  string `json:"week_id"`
	ClassID string `json:"class_id"`
}

// Set godoc
// @Summary Save the week/class selection for a scope
// @Tags Preferences
// @Accept json
// @Produce json
// @Param semester query int false "Semester (1 or 2)"
// @Param quarter query int false "Quarter (1 or 2)"
// @Param payload body setPreferenceRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Router /preferences [put]
func (h *PreferenceHandler) Set(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	semester, quarter, err := scopeFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req setPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	pref := models.ViewPreference{WeekID: req.WeekID, ClassID: req.ClassID}
	if err := h.preferences.Set(c.Request.Context(), claims.UserID, semester, quarter, pref); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pref)
}
