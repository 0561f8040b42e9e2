package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/scoring"
	"github.com/noah-isme/alanjal-marks-api/internal/session"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
)

type studentFetcher interface {
	ListStudents(ctx context.Context, weekID string) ([]models.StudentRecord, error)
}

type scoreSubmitter interface {
	BulkUpdateScores(ctx context.Context, updates []models.ScoreUpdate, weekID string) (int, error)
}

// MarkRow is one student's record joined with its derived totals and levels
// for a phase.
type MarkRow struct {
	models.StudentRecord

	WeeklyTotal float64       `json:"weekly_total"`
	WeeklyLevel scoring.Level `json:"weekly_performance_level"`

	CombinedTotal float64       `json:"combined_total"`
	CombinedLevel scoring.Level `json:"combined_performance_level"`

	FinalTotal float64       `json:"final_total"`
	FinalLevel scoring.Level `json:"final_performance_level"`
}

// MarksService joins baseline records from the server of record with the
// scoring package. It is the only place totals and levels are derived.
type MarksService struct {
	students  studentFetcher
	submitter scoreSubmitter
	logger    *zap.Logger
}

// NewMarksService constructs MarksService.
func NewMarksService(students studentFetcher, submitter scoreSubmitter, logger *zap.Logger) *MarksService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarksService{students: students, submitter: submitter, logger: logger}
}

// List returns derived mark rows for a phase, filtered. Outside an edit
// session, server-precomputed combined totals and levels win over local
// recomputation when present.
func (s *MarksService) List(ctx context.Context, phase models.Phase, domain models.MarkDomain, filter models.StudentFilter) ([]MarkRow, error) {
	if !phase.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "phase must be 1 or 2")
	}
	records, err := s.students.ListStudents(ctx, filter.WeekID)
	if err != nil {
		return nil, err
	}

	rows := make([]MarkRow, 0, len(records))
	for i := range records {
		row := s.buildRow(&records[i], &records[i], phase, true)
		if !matchesFilter(row, domain, filter) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PreviewRows derives rows through a live edit session: the baseline
// supplies the frozen portion, the overlay the fields being edited.
// Precomputed server totals are ignored so staged input is reflected
// immediately.
func (s *MarksService) PreviewRows(baseline []models.StudentRecord, sess *session.BulkEditSession) []MarkRow {
	rows := make([]MarkRow, 0, len(baseline))
	for i := range baseline {
		resolved := sess.Resolve(baseline[i])
		rows = append(rows, s.buildRow(&baseline[i], &resolved, sess.Phase, false))
	}
	return rows
}

// ClearScores nulls one surface's field subset for every student of a class
// in a week. The scope is deliberately narrow: a weekly page clears weekly
// fields only, an assessment page its own quarter's fields only.
func (s *MarksService) ClearScores(ctx context.Context, phase models.Phase, domain models.MarkDomain, weekID, classID string) (int, error) {
	if !phase.Valid() {
		return 0, appErrors.Clone(appErrors.ErrValidation, "phase must be 1 or 2")
	}
	if !domain.Valid() {
		return 0, appErrors.Clone(appErrors.ErrValidation, "domain must be weekly, assessment or exam")
	}
	if weekID == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "select a week before clearing scores")
	}
	if classID == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "select a class before clearing scores")
	}

	records, err := s.students.ListStudents(ctx, weekID)
	if err != nil {
		return 0, err
	}

	fields := models.DomainFields(domain, phase)
	updates := make([]models.ScoreUpdate, 0, len(records))
	for i := range records {
		if records[i].ClassID != classID {
			continue
		}
		update := models.ScoreUpdate{ID: records[i].ID, Fields: make(map[models.ScoreField]*float64, len(fields))}
		for _, field := range fields {
			update.Fields[field] = nil
		}
		updates = append(updates, update)
	}
	if len(updates) == 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "no students in the selected class")
	}

	updated, err := s.submitter.BulkUpdateScores(ctx, updates, weekID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("cleared scores",
		zap.String("class_id", classID),
		zap.String("week_id", weekID),
		zap.String("domain", string(domain)),
		zap.Int("students", len(updates)),
	)
	return updated, nil
}

func (s *MarksService) buildRow(base, cur *models.StudentRecord, phase models.Phase, allowPrecomputed bool) MarkRow {
	row := MarkRow{
		StudentRecord: *cur,
		WeeklyTotal:   scoring.WeeklyFollowUpTotal(cur),
		WeeklyLevel:   scoring.ClassifyWeekly(cur),
		CombinedTotal: scoring.CombinedAssessmentTotal(base, cur, phase),
		CombinedLevel: scoring.ClassifyCombinedAssessment(base, cur, phase),
		FinalTotal:    scoring.FinalExamTotal(base, cur, phase),
		FinalLevel:    scoring.ClassifyFinalExam(base, cur, phase),
	}
	if !allowPrecomputed {
		return row
	}
	if total := precomputedTotal(base, phase); total != nil {
		row.CombinedTotal = *total
	}
	if level := precomputedLevel(base, phase); level != nil {
		row.CombinedLevel = scoring.Level(*level)
	}
	return row
}

func precomputedTotal(r *models.StudentRecord, phase models.Phase) *float64 {
	if phase == models.PhaseQ2 {
		return r.AssessmentQ2CombinedTotal
	}
	return r.AssessmentQ1CombinedTotal
}

func precomputedLevel(r *models.StudentRecord, phase models.Phase) *string {
	if phase == models.PhaseQ2 {
		return r.AssessmentQ2PerformanceLevel
	}
	return r.AssessmentQ1PerformanceLevel
}

func matchesFilter(row MarkRow, domain models.MarkDomain, filter models.StudentFilter) bool {
	if filter.ClassID != "" && filter.ClassID != "all" && row.ClassID != filter.ClassID {
		return false
	}
	if filter.Search != "" && !strings.Contains(strings.ToLower(row.FullName), strings.ToLower(filter.Search)) {
		return false
	}

	total, level := domainScore(row, domain)
	if filter.Performance != "" && filter.Performance != "all" && string(level) != filter.Performance {
		return false
	}
	if filter.MinScore != nil && total < *filter.MinScore {
		return false
	}
	if filter.MaxScore != nil && total > *filter.MaxScore {
		return false
	}
	return true
}

func domainScore(row MarkRow, domain models.MarkDomain) (float64, scoring.Level) {
	switch domain {
	case models.DomainWeekly:
		return row.WeeklyTotal, row.WeeklyLevel
	case models.DomainExam:
		return row.FinalTotal, row.FinalLevel
	default:
		return row.CombinedTotal, row.CombinedLevel
	}
}

// String implements fmt.Stringer for log-friendly row identity.
func (r MarkRow) String() string {
	return fmt.Sprintf("%s (%s)", r.FullName, r.ID)
}
