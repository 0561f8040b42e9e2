package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/service"
)

func ptrFloat(v float64) *float64 { return &v }

type upstreamMock struct {
	records []models.StudentRecord
	listErr error
	updates []models.ScoreUpdate
	weekID  string
	bulkErr error
}

func (m *upstreamMock) ListStudents(_ context.Context, weekID string) ([]models.StudentRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

func (m *upstreamMock) BulkUpdateScores(_ context.Context, updates []models.ScoreUpdate, weekID string) (int, error) {
	if m.bulkErr != nil {
		return 0, m.bulkErr
	}
	m.updates = updates
	m.weekID = weekID
	return len(updates), nil
}

func newMarksHandler(mock *upstreamMock) *MarksHandler {
	return NewMarksHandler(service.NewMarksService(mock, mock, nil))
}

func TestMarksHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &upstreamMock{records: []models.StudentRecord{{
		ID:            "stu-1",
		ClassID:       "class-1",
		FullName:      "Sara Ali",
		Attendance:    ptrFloat(2.5),
		Participation: ptrFloat(2.5),
		Behavior:      ptrFloat(5),
		Homework:      ptrFloat(5),
	}}}
	handler := newMarksHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/marks?phase=1&domain=weekly&week_id=week-3", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []struct {
			ID          string  `json:"id"`
			WeeklyTotal float64 `json:"weekly_total"`
			WeeklyLevel string  `json:"weekly_performance_level"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, 15.0, body.Data[0].WeeklyTotal)
	assert.Equal(t, "on_level", body.Data[0].WeeklyLevel)
}

func TestMarksHandlerListRejectsBadPhase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newMarksHandler(&upstreamMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/marks?phase=9", nil)
	c.Request = req

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarksHandlerClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &upstreamMock{records: []models.StudentRecord{{ID: "stu-1", ClassID: "class-1"}}}
	handler := newMarksHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	payload := `{"week_id":"week-3","class_id":"class-1"}`
	req, _ := http.NewRequest(http.MethodPost, "/marks/clear?phase=1&domain=weekly", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Clear(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mock.updates, 1)
	assert.Equal(t, "week-3", mock.weekID)
}

func TestMarksHandlerClearRequiresScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newMarksHandler(&upstreamMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/marks/clear", bytes.NewBufferString(`{"week_id":"week-3"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Clear(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
