package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/service"
	"github.com/noah-isme/alanjal-marks-api/internal/session"
)

func newSessionRouter(mock *upstreamMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(time.Hour)
	marks := service.NewMarksService(mock, mock, nil)
	sessions := service.NewSessionService(store, mock, mock, marks, nil)
	handler := NewSessionHandler(sessions)

	router := gin.New()
	router.POST("/sessions", handler.Begin)
	router.POST("/sessions/:id/stage", handler.Stage)
	router.POST("/sessions/:id/fill", handler.Fill)
	router.GET("/sessions/:id/preview", handler.Preview)
	router.POST("/sessions/:id/commit", handler.Commit)
	router.DELETE("/sessions/:id", handler.Cancel)
	return router
}

func postJSON(router *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func beginSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := postJSON(router, "/sessions", `{"phase":2,"domain":"assessment","week_id":"week-12"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data struct {
			SessionID string `json:"session_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.SessionID)
	return body.Data.SessionID
}

func TestSessionLifecycle(t *testing.T) {
	mock := &upstreamMock{records: []models.StudentRecord{{ID: "stu-1"}}}
	router := newSessionRouter(mock)
	id := beginSession(t, router)

	w := postJSON(router, "/sessions/"+id+"/stage", `{"student_id":"stu-1","field":"quiz3","value":"4.5"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/sessions/"+id+"/commit", "")
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, mock.updates, 1)
	require.NotNil(t, mock.updates[0].Fields[models.FieldQuiz3])
	assert.Equal(t, 4.5, *mock.updates[0].Fields[models.FieldQuiz3])
	assert.Equal(t, "week-12", mock.weekID)

	// Session is gone after a successful commit.
	w = postJSON(router, "/sessions/"+id+"/stage", `{"student_id":"stu-1","field":"quiz3","value":"3"}`)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestSessionStageClampWarningSurfaced(t *testing.T) {
	mock := &upstreamMock{records: []models.StudentRecord{{ID: "stu-1"}}}
	router := newSessionRouter(mock)
	id := beginSession(t, router)

	w := postJSON(router, "/sessions/"+id+"/stage", `{"student_id":"stu-1","field":"quiz3","value":"9"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Warnings, 1)
}

func TestSessionFillRejectsInvalidValue(t *testing.T) {
	mock := &upstreamMock{records: []models.StudentRecord{{ID: "stu-1"}}}
	router := newSessionRouter(mock)
	id := beginSession(t, router)

	w := postJSON(router, "/sessions/"+id+"/fill", `{"field":"quiz3","value":"abc","student_ids":["stu-1"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionPreviewAppliesOverlay(t *testing.T) {
	mock := &upstreamMock{records: []models.StudentRecord{{ID: "stu-1", Quiz3: ptrFloat(1)}}}
	router := newSessionRouter(mock)
	id := beginSession(t, router)

	w := postJSON(router, "/sessions/"+id+"/stage", `{"student_id":"stu-1","field":"quiz3","value":"5"}`)
	require.Equal(t, http.StatusOK, w.Code)

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/sessions/"+id+"/preview", nil)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			Quiz3 *float64 `json:"quiz3"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.NotNil(t, body.Data[0].Quiz3)
	assert.Equal(t, 5.0, *body.Data[0].Quiz3)
	assert.Empty(t, mock.updates, "preview never writes upstream")
}

func TestSessionBeginRejectsBadDomain(t *testing.T) {
	router := newSessionRouter(&upstreamMock{})
	w := postJSON(router, "/sessions", `{"phase":1,"domain":"semester"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionCancelDiscards(t *testing.T) {
	mock := &upstreamMock{records: []models.StudentRecord{{ID: "stu-1"}}}
	router := newSessionRouter(mock)
	id := beginSession(t, router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/sessions/"+id, nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	rec := postJSON(router, "/sessions/"+id+"/commit", "")
	assert.Equal(t, http.StatusGone, rec.Code)
}
