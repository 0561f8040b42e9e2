// Package session implements the staged bulk-edit overlay for assessment
// marks. Staged values are layered over baseline records without mutating
// them until a caller-driven commit, so a failed remote write never loses
// typed input.
package session

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
)

// BulkEditSession holds per-student, per-field staged overrides. Values are
// kept as the raw strings the client typed; parsing is deferred to diff time.
type BulkEditSession struct {
	ID      string
	Phase   models.Phase
	Domain  models.MarkDomain
	WeekID  string
	Created time.Time

	mu      sync.Mutex
	touched time.Time
	active  bool
	overlay map[string]map[models.ScoreField]string
}

func newSession(id string, phase models.Phase, domain models.MarkDomain, weekID string, now time.Time) *BulkEditSession {
	return &BulkEditSession{
		ID:      id,
		Phase:   phase,
		Domain:  domain,
		WeekID:  weekID,
		Created: now,
		touched: now,
		overlay: make(map[string]map[models.ScoreField]string),
	}
}

// Fields returns the field subset this session's surface owns.
func (s *BulkEditSession) Fields() []models.ScoreField {
	return models.DomainFields(s.Domain, s.Phase)
}

// Active reports whether edit mode has been entered.
func (s *BulkEditSession) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Seed pre-stages the baseline values of the given fields for every record,
// the "full edit" mode where untouched cells still resolve to what the user
// sees.
func (s *BulkEditSession) Seed(records []models.StudentRecord, fields []models.ScoreField) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	for i := range records {
		record := &records[i]
		staged := s.overlay[record.ID]
		if staged == nil {
			staged = make(map[models.ScoreField]string, len(fields))
			s.overlay[record.ID] = staged
		}
		for _, field := range fields {
			if value := record.Score(field); value != nil {
				staged[field] = strconv.FormatFloat(*value, 'f', -1, 64)
			} else {
				staged[field] = ""
			}
		}
	}
}

// Stage records one keystroke's worth of input for a student field.
// Empty input is stored unchanged (clearing a field is allowed). Input above
// the field's maximum is clamped and a non-fatal warning returned. Malformed
// input is stored as-is and resolved to "unset" at diff time.
func (s *BulkEditSession) Stage(studentID string, field models.ScoreField, raw string) (string, error) {
	max, ok := models.FieldMax(field)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown score field %q", field))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.touched = time.Now()

	warning := ""
	store := raw
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		if num, err := strconv.ParseFloat(trimmed, 64); err == nil && num > max {
			store = strconv.FormatFloat(max, 'f', -1, 64)
			warning = exceededWarning(field, max)
		}
	}

	staged := s.overlay[studentID]
	if staged == nil {
		staged = make(map[models.ScoreField]string)
		s.overlay[studentID] = staged
	}
	staged[field] = store
	return warning, nil
}

// FillColumn applies one value to a field for every listed student,
// implicitly entering edit mode. The value must be a non-negative number;
// clamping emits exactly one warning per call, not one per student.
func (s *BulkEditSession) FillColumn(field models.ScoreField, raw string, studentIDs []string) (string, error) {
	max, ok := models.FieldMax(field)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown score field %q", field))
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "enter a value to fill")
	}
	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || num < 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "enter a valid non-negative number")
	}

	warning := ""
	store := trimmed
	if num > max {
		store = strconv.FormatFloat(max, 'f', -1, 64)
		warning = exceededWarning(field, max)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.touched = time.Now()
	for _, id := range studentIDs {
		staged := s.overlay[id]
		if staged == nil {
			staged = make(map[models.ScoreField]string)
			s.overlay[id] = staged
		}
		staged[field] = store
	}
	return warning, nil
}

// Resolve returns a copy of the baseline record with staged values applied,
// for live preview of derived totals. Staged empties and malformed input
// resolve to "unset".
func (s *BulkEditSession) Resolve(baseline models.StudentRecord) models.StudentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged, ok := s.overlay[baseline.ID]
	if !ok {
		return baseline
	}
	resolved := baseline
	for field, raw := range staged {
		resolved.SetScore(field, parseStaged(raw))
	}
	return resolved
}

// Diff converts the overlay into the minimal bulk-update payload for the
// given phase field set. Only students with staged input appear; for those,
// untouched requested fields fall back to the baseline value so the row is
// submitted whole. Staged empty or malformed input becomes an explicit nil,
// which clears the field on the server of record.
func (s *BulkEditSession) Diff(baseline []models.StudentRecord, fields []models.ScoreField) []models.ScoreUpdate {
	byID := make(map[string]*models.StudentRecord, len(baseline))
	for i := range baseline {
		byID[baseline[i].ID] = &baseline[i]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updates := make([]models.ScoreUpdate, 0, len(s.overlay))
	for i := range baseline {
		id := baseline[i].ID
		staged, ok := s.overlay[id]
		if !ok || len(staged) == 0 {
			continue
		}
		update := models.ScoreUpdate{ID: id, Fields: make(map[models.ScoreField]*float64, len(fields))}
		for _, field := range fields {
			if raw, touched := staged[field]; touched {
				update.Fields[field] = parseStaged(raw)
				continue
			}
			update.Fields[field] = byID[id].Score(field)
		}
		updates = append(updates, update)
	}
	return updates
}

// StagedCount returns the number of students with staged input.
func (s *BulkEditSession) StagedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.overlay)
}

// Commit clears the overlay after a successful remote write.
func (s *BulkEditSession) Commit() {
	s.reset()
}

// Cancel discards all staged input.
func (s *BulkEditSession) Cancel() {
	s.reset()
}

func (s *BulkEditSession) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.overlay = make(map[string]map[models.ScoreField]string)
	s.touched = time.Now()
}

func (s *BulkEditSession) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

func parseStaged(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &num
}

func exceededWarning(field models.ScoreField, max float64) string {
	return fmt.Sprintf("%s exceeds the maximum of %s and was capped", field, strconv.FormatFloat(max, 'f', -1, 64))
}
