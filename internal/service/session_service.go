package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/session"
)

type sessionRegistry interface {
	Create(phase models.Phase, domain models.MarkDomain, weekID string) (*session.BulkEditSession, error)
	Get(id string) (*session.BulkEditSession, error)
	Delete(id string)
}

// SessionService drives the bulk-edit lifecycle: begin, stage, fill, preview,
// commit, cancel. Staged input lives only in the session until commit, and a
// failed remote write leaves the overlay intact so nothing typed is lost.
type SessionService struct {
	registry  sessionRegistry
	students  studentFetcher
	submitter scoreSubmitter
	marks     *MarksService
	logger    *zap.Logger
}

// NewSessionService constructs SessionService.
func NewSessionService(registry sessionRegistry, students studentFetcher, submitter scoreSubmitter, marks *MarksService, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		registry:  registry,
		students:  students,
		submitter: submitter,
		marks:     marks,
		logger:    logger,
	}
}

// Begin opens a session for one surface, phase and week. With seed set, the
// current baseline values of the surface's fields are pre-staged so untouched
// cells resolve to exactly what the user sees.
func (s *SessionService) Begin(ctx context.Context, phase models.Phase, domain models.MarkDomain, weekID string, seed bool) (*session.BulkEditSession, error) {
	sess, err := s.registry.Create(phase, domain, weekID)
	if err != nil {
		return nil, err
	}
	if seed {
		records, err := s.students.ListStudents(ctx, weekID)
		if err != nil {
			s.registry.Delete(sess.ID)
			return nil, err
		}
		sess.Seed(records, sess.Fields())
	}
	s.logger.Info("edit session opened",
		zap.String("session_id", sess.ID),
		zap.String("domain", string(domain)),
		zap.Int("phase", int(phase)),
		zap.String("week_id", weekID),
	)
	return sess, nil
}

// Stage records one cell edit. The returned warning, when non-empty, is
// non-fatal clamp feedback for the client.
func (s *SessionService) Stage(sessionID, studentID string, field models.ScoreField, raw string) (string, error) {
	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return "", err
	}
	return sess.Stage(studentID, field, raw)
}

// Fill applies one value to a column for the listed students.
func (s *SessionService) Fill(sessionID string, field models.ScoreField, raw string, studentIDs []string) (string, error) {
	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return "", err
	}
	return sess.FillColumn(field, raw, studentIDs)
}

// Preview returns derived rows with the session overlay applied, without
// touching the server of record.
func (s *SessionService) Preview(ctx context.Context, sessionID string) ([]MarkRow, error) {
	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	baseline, err := s.students.ListStudents(ctx, sess.WeekID)
	if err != nil {
		return nil, err
	}
	return s.marks.PreviewRows(baseline, sess), nil
}

// Commit diffs the overlay against a fresh baseline and submits the result in
// one bulk call. On success the session is closed; on failure the overlay is
// preserved for retry.
func (s *SessionService) Commit(ctx context.Context, sessionID string) (int, error) {
	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return 0, err
	}

	baseline, err := s.students.ListStudents(ctx, sess.WeekID)
	if err != nil {
		return 0, err
	}

	updates := sess.Diff(baseline, sess.Fields())
	if len(updates) == 0 {
		s.registry.Delete(sessionID)
		return 0, nil
	}

	updated, err := s.submitter.BulkUpdateScores(ctx, updates, sess.WeekID)
	if err != nil {
		s.logger.Warn("bulk save failed, staged input preserved",
			zap.String("session_id", sessionID),
			zap.Int("students", len(updates)),
			zap.Error(err),
		)
		return 0, err
	}

	s.logger.Info("bulk save committed",
		zap.String("session_id", sessionID),
		zap.Int("students", len(updates)),
		zap.Int("updated", updated),
	)
	sess.Commit()
	s.registry.Delete(sessionID)
	return updated, nil
}

// Cancel discards a session and everything staged in it.
func (s *SessionService) Cancel(sessionID string) {
	s.registry.Delete(sessionID)
}
