package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/service"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
	"github.com/noah-isme/alanjal-marks-api/pkg/response"
)

// SessionHandler exposes the bulk-edit session lifecycle.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type beginSessionRequest struct {
	Phase  int    `json:"phase" binding:"required,oneof=1 2"`
	Domain string `json:"domain" binding:"required,oneof=weekly assessment exam"`
	WeekID string `json:"week_id"`
	Seed   bool   `json:"seed"`
}

// Begin godoc
// @Summary Open a bulk-edit session for one mark surface
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body beginSessionRequest true "Session scope"
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Begin(c *gin.Context) {
	var req beginSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	sess, err := h.sessions.Begin(c.Request.Context(), models.Phase(req.Phase), models.MarkDomain(req.Domain), req.WeekID, req.Seed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"session_id": sess.ID,
		"phase":      int(sess.Phase),
		"domain":     string(sess.Domain),
		"week_id":    sess.WeekID,
		"staged":     sess.StagedCount(),
	})
}

type stageRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Field     string `json:"field" binding:"required"`
	Value     string `json:"value"`
}

// Stage godoc
// @Summary Stage one cell edit in a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body stageRequest true "Cell edit"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/stage [post]
func (h *SessionHandler) Stage(c *gin.Context) {
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	warning, err := h.sessions.Stage(c.Param("id"), req.StudentID, models.ScoreField(req.Field), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	if warning != "" {
		response.JSONWithWarnings(c, http.StatusOK, gin.H{"staged": true}, []string{warning})
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"staged": true})
}

type fillRequest struct {
	Field      string   `json:"field" binding:"required"`
	Value      string   `json:"value" binding:"required"`
	StudentIDs []string `json:"student_ids" binding:"required,min=1"`
}

// Fill godoc
// @Summary Fill one column for many students in a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body fillRequest true "Column fill"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/fill [post]
func (h *SessionHandler) Fill(c *gin.Context) {
	var req fillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	warning, err := h.sessions.Fill(c.Param("id"), models.ScoreField(req.Field), req.Value, req.StudentIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	if warning != "" {
		response.JSONWithWarnings(c, http.StatusOK, gin.H{"filled": len(req.StudentIDs)}, []string{warning})
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"filled": len(req.StudentIDs)})
}

// Preview godoc
// @Summary Preview derived totals with staged edits applied
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/preview [get]
func (h *SessionHandler) Preview(c *gin.Context) {
	rows, err := h.sessions.Preview(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{"count": len(rows)})
}

// Commit godoc
// @Summary Submit staged edits in one bulk save
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/commit [post]
func (h *SessionHandler) Commit(c *gin.Context) {
	updated, err := h.sessions.Commit(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": updated})
}

// Cancel godoc
// @Summary Discard a session and everything staged in it
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Cancel(c *gin.Context) {
	h.sessions.Cancel(c.Param("id"))
	response.NoContent(c)
}
