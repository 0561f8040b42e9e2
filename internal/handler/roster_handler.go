package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alanjal-marks-api/internal/service"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
	"github.com/noah-isme/alanjal-marks-api/pkg/response"
)

// RosterHandler exposes classes and teaching weeks.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler constructs RosterHandler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// Classes godoc
// @Summary List classes
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *RosterHandler) Classes(c *gin.Context) {
	classes, err := h.roster.Classes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Weeks godoc
// @Summary List teaching weeks for a semester
// @Tags Roster
// @Produce json
// @Param semester query int false "Semester (1 or 2)"
// @Param quarter query int false "Quarter filter"
// @Success 200 {object} response.Envelope
// @Router /weeks [get]
func (h *RosterHandler) Weeks(c *gin.Context) {
	semester, err := strconv.Atoi(c.DefaultQuery("semester", "1"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2"))
		return
	}
	quarter, _ := strconv.Atoi(c.Query("quarter"))

	weeks, err := h.roster.Weeks(c.Request.Context(), semester, quarter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, weeks)
}
