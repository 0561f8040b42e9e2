package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/session"
)

func newSessionFixture(students *fakeStudents, submitter *fakeSubmitter) (*SessionService, *session.Store) {
	store := session.NewStore(time.Hour)
	marks := NewMarksService(students, submitter, nil)
	return NewSessionService(store, students, submitter, marks, nil), store
}

func TestBeginWithSeedPreStagesBaseline(t *testing.T) {
	students := &fakeStudents{records: []models.StudentRecord{{ID: "stu-1", Quiz3: ptrFloat(4)}}}
	svc, _ := newSessionFixture(students, &fakeSubmitter{})

	sess, err := svc.Begin(context.Background(), models.PhaseQ2, models.DomainAssessment, "week-12", true)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.StagedCount())
	assert.True(t, sess.Active())
}

func TestBeginSeedFetchFailureDiscardsSession(t *testing.T) {
	students := &fakeStudents{err: errors.New("upstream down")}
	svc, store := newSessionFixture(students, &fakeSubmitter{})

	sess, err := svc.Begin(context.Background(), models.PhaseQ1, models.DomainWeekly, "week-1", true)
	require.Error(t, err)
	require.Nil(t, sess)

	students.err = nil
	fresh, err := svc.Begin(context.Background(), models.PhaseQ1, models.DomainWeekly, "week-1", false)
	require.NoError(t, err)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestCommitSubmitsDiffAndClosesSession(t *testing.T) {
	students := &fakeStudents{records: []models.StudentRecord{{ID: "stu-1"}}}
	submitter := &fakeSubmitter{}
	svc, store := newSessionFixture(students, submitter)

	sess, err := svc.Begin(context.Background(), models.PhaseQ2, models.DomainAssessment, "week-12", false)
	require.NoError(t, err)

	_, err = svc.Stage(sess.ID, "stu-1", models.FieldQuiz3, "4.5")
	require.NoError(t, err)

	updated, err := svc.Commit(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, "week-12", submitter.weekID)

	require.Len(t, submitter.updates, 1)
	require.NotNil(t, submitter.updates[0].Fields[models.FieldQuiz3])
	assert.Equal(t, 4.5, *submitter.updates[0].Fields[models.FieldQuiz3])

	_, err = store.Get(sess.ID)
	assert.Error(t, err, "committed session is gone")
}

func TestCommitFailurePreservesOverlay(t *testing.T) {
	students := &fakeStudents{records: []models.StudentRecord{{ID: "stu-1"}}}
	submitter := &fakeSubmitter{err: errors.New("timeout")}
	svc, store := newSessionFixture(students, submitter)

	sess, err := svc.Begin(context.Background(), models.PhaseQ2, models.DomainAssessment, "week-12", false)
	require.NoError(t, err)
	_, err = svc.Stage(sess.ID, "stu-1", models.FieldQuiz3, "4.5")
	require.NoError(t, err)

	_, err = svc.Commit(context.Background(), sess.ID)
	require.Error(t, err)

	kept, err := store.Get(sess.ID)
	require.NoError(t, err, "failed save must not close the session")
	assert.Equal(t, 1, kept.StagedCount(), "staged input survives for retry")

	// Retry after the backend recovers.
	submitter.err = nil
	updated, err := svc.Commit(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
}

func TestCommitWithNothingStagedIsNoOp(t *testing.T) {
	students := &fakeStudents{records: []models.StudentRecord{{ID: "stu-1"}}}
	submitter := &fakeSubmitter{}
	svc, _ := newSessionFixture(students, submitter)

	sess, err := svc.Begin(context.Background(), models.PhaseQ1, models.DomainWeekly, "week-1", false)
	require.NoError(t, err)

	updated, err := svc.Commit(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Zero(t, submitter.calls, "empty diff never hits the server of record")
}

func TestPreviewAppliesOverlayWithoutSubmitting(t *testing.T) {
	students := &fakeStudents{records: []models.StudentRecord{{ID: "stu-1", Quiz3: ptrFloat(1)}}}
	submitter := &fakeSubmitter{}
	svc, _ := newSessionFixture(students, submitter)

	sess, err := svc.Begin(context.Background(), models.PhaseQ2, models.DomainAssessment, "week-12", false)
	require.NoError(t, err)
	_, err = svc.Stage(sess.ID, "stu-1", models.FieldQuiz3, "5")
	require.NoError(t, err)

	rows, err := svc.Preview(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Quiz3)
	assert.Equal(t, 5.0, *rows[0].Quiz3)
	assert.Zero(t, submitter.calls)
}

func TestStageOnExpiredSessionFails(t *testing.T) {
	svc, _ := newSessionFixture(&fakeStudents{}, &fakeSubmitter{})
	_, err := svc.Stage("no-such-session", "stu-1", models.FieldQuiz3, "4")
	assert.Error(t, err)
}

func TestCancelDiscardsSession(t *testing.T) {
	svc, store := newSessionFixture(&fakeStudents{}, &fakeSubmitter{})

	sess, err := svc.Begin(context.Background(), models.PhaseQ1, models.DomainWeekly, "week-1", false)
	require.NoError(t, err)

	svc.Cancel(sess.ID)
	_, err = store.Get(sess.ID)
	assert.Error(t, err)
}
