package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/service"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
	"github.com/noah-isme/alanjal-marks-api/pkg/response"
)

// MarksHandler exposes the derived marks listing and bulk clear endpoints.
type MarksHandler struct {
	marks *service.MarksService
}

// NewMarksHandler constructs MarksHandler.
func NewMarksHandler(marks *service.MarksService) *MarksHandler {
	return &MarksHandler{marks: marks}
}

// List godoc
// @Summary List students with derived mark totals and performance levels
// @Tags Marks
// @Produce json
// @Param phase query int false "Assessment phase (1 or 2)"
// @Param domain query string false "Mark surface: weekly, assessment or exam"
// @Param week_id query string false "Week scope"
// @Param class_id query string false "Filter by class"
// @Param search query string false "Filter by student name"
// @Param performance query string false "Filter by performance level"
// @Param min_score query number false "Minimum total"
// @Param max_score query number false "Maximum total"
// @Success 200 {object} response.Envelope
// @Router /marks [get]
func (h *MarksHandler) List(c *gin.Context) {
	phase, err := phaseFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	domain, err := domainFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	filter := models.StudentFilter{
		WeekID:      c.Query("week_id"),
		ClassID:     c.Query("class_id"),
		Search:      strings.TrimSpace(c.Query("search")),
		Performance: c.Query("performance"),
	}
	if raw := c.Query("min_score"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinScore = &v
		}
	}
	if raw := c.Query("max_score"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxScore = &v
		}
	}

	rows, err := h.marks.List(c.Request.Context(), phase, domain, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{"count": len(rows)})
}

type clearScoresRequest struct {
	WeekID  string `json:"week_id" binding:"required"`
	ClassID string `json:"class_id" binding:"required"`
}

// Clear godoc
// @Summary Clear one surface's scores for a class in a week
// @Tags Marks
// @Accept json
// @Produce json
// @Param phase query int false "Assessment phase (1 or 2)"
// @Param domain query string false "Mark surface: weekly, assessment or exam"
// @Param payload body clearScoresRequest true "Clear scope"
// @Success 200 {object} response.Envelope
// @Router /marks/clear [post]
func (h *MarksHandler) Clear(c *gin.Context) {
	phase, err := phaseFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	domain, err := domainFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req clearScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	updated, err := h.marks.ClearScores(c.Request.Context(), phase, domain, req.WeekID, req.ClassID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": updated})
}
