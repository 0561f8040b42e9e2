package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/pkg/config"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(config.UpstreamConfig{
		BaseURL:         server.URL,
		Timeout:         2 * time.Second,
		BulkSaveTimeout: 2 * time.Second,
	}, zap.NewNop())
}

func TestListStudentsKeepsAbsentFieldsAbsent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students", r.URL.Path)
		assert.Equal(t, "week-3", r.URL.Query().Get("week_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"stu-1","class_id":"cls-1","full_name":"Amira","quiz3":4.5}]`))
	})

	students, err := client.ListStudents(context.Background(), "week-3")
	require.NoError(t, err)
	require.Len(t, students, 1)

	require.NotNil(t, students[0].Quiz3)
	assert.Equal(t, 4.5, *students[0].Quiz3)
	assert.Nil(t, students[0].Quiz4, "omitted fields stay absent, not zero")
	assert.Nil(t, students[0].Attendance)
}

func TestBulkUpdateScoresSendsExplicitNulls(t *testing.T) {
	var captured map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students/bulk-scores", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"updated","updated":1}`))
	})

	value := 4.0
	updates := []models.ScoreUpdate{{
		ID: "stu-1",
		Fields: map[models.ScoreField]*float64{
			models.FieldQuiz3: &value,
			models.FieldQuiz4: nil,
		},
	}}
	updated, err := client.BulkUpdateScores(context.Background(), updates, "week-3")
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	assert.Equal(t, "week-3", captured["week_id"])
	rows, ok := captured["updates"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)

	row, ok := rows[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "stu-1", row["id"])
	assert.Equal(t, 4.0, row["quiz3"])

	cleared, present := row["quiz4"]
	require.True(t, present, "cleared fields travel as explicit null")
	assert.Nil(t, cleared)
}

func TestTimeoutMapsToUpstreamTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client := New(config.UpstreamConfig{
		BaseURL: server.URL,
		Timeout: 20 * time.Millisecond,
	}, zap.NewNop())

	_, err := client.ListStudents(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstreamTimeout.Code, appErrors.FromError(err).Code)
}

func TestConnectionRefusedMapsToUnavailable(t *testing.T) {
	client := New(config.UpstreamConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 500 * time.Millisecond,
	}, zap.NewNop())

	_, err := client.ListClasses(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstreamUnavailable.Code, appErrors.FromError(err).Code)
}

func TestServerDetailSurfacesInError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Student not found"}`))
	})

	_, err := client.ListStudents(context.Background(), "")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, "Student not found", appErr.Message)
}

func TestListWeeksPassesSemesterAndQuarter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("semester"))
		assert.Equal(t, "2", r.URL.Query().Get("quarter"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"week-10","number":10,"semester":2,"quarter":2}]`))
	})

	weeks, err := client.ListWeeks(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, 10, weeks[0].Number)
}

func TestSettingsFetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/settings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"promotion_enabled":true}`))
	})

	settings, err := client.Settings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.PromotionEnabled)
}

type callRecorder struct {
	ops []string
}

func (r *callRecorder) ObserveUpstreamCall(op string, _ time.Duration) {
	r.ops = append(r.ops, op)
}

func TestClientReportsCallTimings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "updated": 0})
			return
		}
		_ = json.NewEncoder(w).Encode([]models.StudentRecord{})
	})
	recorder := &callRecorder{}
	client.SetObserver(recorder)

	_, err := client.ListStudents(context.Background(), "")
	require.NoError(t, err)
	_, err = client.BulkUpdateScores(context.Background(), nil, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"/students", "bulk save"}, recorder.ops)
}
