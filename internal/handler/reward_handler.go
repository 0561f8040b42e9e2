package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/service"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
	"github.com/noah-isme/alanjal-marks-api/pkg/response"
)

// RewardHandler exposes the shared reward-flag map.
type RewardHandler struct {
	rewards *service.RewardService
}

// NewRewardHandler constructs RewardHandler.
func NewRewardHandler(rewards *service.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

// List godoc
// @Summary Read the full reward map
// @Tags Rewards
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rewards [get]
func (h *RewardHandler) List(c *gin.Context) {
	flags, err := h.rewards.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, flags)
}

type toggleRewardRequest struct {
	Flag string `json:"flag" binding:"required,oneof=badge certificate comment"`
}

// Toggle godoc
// @Summary Toggle one reward flag for a student
// @Tags Rewards
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param payload body toggleRewardRequest true "Flag to toggle"
// @Success 200 {object} response.Envelope
// @Router /rewards/{studentId}/toggle [post]
func (h *RewardHandler) Toggle(c *gin.Context) {
	var req toggleRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	entry, err := h.rewards.Toggle(c.Request.Context(), c.Param("studentId"), req.Flag)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Get godoc
// @Summary Read one student's reward flags
// @Tags Rewards
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /rewards/{studentId} [get]
func (h *RewardHandler) Get(c *gin.Context) {
	entry, err := h.rewards.Get(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

type setRewardRequest struct {
	Badge       bool `json:"badge"`
	Certificate bool `json:"certificate"`
	Comment     bool `json:"comment"`
}

// Set godoc
// @Summary Overwrite one student's reward flags
// @Tags Rewards
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param payload body setRewardRequest true "Flags"
// @Success 200 {object} response.Envelope
// @Router /rewards/{studentId} [put]
func (h *RewardHandler) Set(c *gin.Context) {
	var req setRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	entry := models.RewardFlags{Badge: req.Badge, Certificate: req.Certificate, Comment: req.Comment}
	if err := h.rewards.Set(c.Request.Context(), c.Param("studentId"), entry); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Sets godoc
// @Summary Read per-flag student id sets
// @Tags Rewards
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rewards/sets [get]
func (h *RewardHandler) Sets(c *gin.Context) {
	sets, err := h.rewards.FlaggedSets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"badge":       keys(sets.Badge),
		"certificate": keys(sets.Certificate),
		"comment":     keys(sets.Comment),
	})
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
