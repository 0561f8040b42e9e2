package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alanjal-marks-api/internal/middleware"
	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/service"
)

type preferenceStoreMock struct {
	prefs      map[string]models.ViewPreference
	lastUserID string
}

func prefKey(userID string, semester, quarter int) string {
	return fmt.Sprintf("%s:s%d_q%d", userID, semester, quarter)
}

func (m *preferenceStoreMock) Get(_ context.Context, userID string, semester, quarter int) (models.ViewPreference, error) {
	m.lastUserID = userID
	return m.prefs[prefKey(userID, semester, quarter)], nil
}

func (m *preferenceStoreMock) Set(_ context.Context, userID string, semester, quarter int, pref models.ViewPreference) error {
	m.lastUserID = userID
	if m.prefs == nil {
		m.prefs = make(map[string]models.ViewPreference)
	}
	m.prefs[prefKey(userID, semester, quarter)] = pref
	return nil
}

func newPreferenceHandler(store *preferenceStoreMock) *PreferenceHandler {
	return NewPreferenceHandler(service.NewPreferenceService(store))
}

func TestPreferenceHandlerGetUsesTokenIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &preferenceStoreMock{prefs: map[string]models.ViewPreference{
		prefKey("user-1", 1, 2): {WeekID: "week-10", ClassID: "class-1"},
	}}
	handler := newPreferenceHandler(store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/preferences?semester=1&quarter=2", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1"})

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", store.lastUserID)
	assert.Contains(t, w.Body.String(), "week-10")
}

func TestPreferenceHandlerGetRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPreferenceHandler(&preferenceStoreMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/preferences", nil)
	c.Request = req

	handler.Get(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPreferenceHandlerSetRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &preferenceStoreMock{}
	handler := newPreferenceHandler(store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/preferences?semester=2&quarter=1", bytes.NewBufferString(`{"week_id":"week-11","class_id":"class-2"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-2"})

	handler.Set(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ViewPreference{WeekID: "week-11", ClassID: "class-2"}, store.prefs[prefKey("user-2", 2, 1)])
}
