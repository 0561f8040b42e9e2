package models

import "encoding/json"

// ScoreField names one raw mark column on the student record.
type ScoreField string

const (
	FieldAttendance    ScoreField = "attendance"
	FieldParticipation ScoreField = "participation"
	FieldBehavior      ScoreField = "behavior"
	FieldHomework      ScoreField = "homework"

	FieldQuiz1 ScoreField = "quiz1"
	FieldQuiz2 ScoreField = "quiz2"
	FieldQuiz3 ScoreField = "quiz3"
	FieldQuiz4 ScoreField = "quiz4"

	FieldChapterTest1Practical ScoreField = "chapter_test1_practical"
	FieldChapterTest2Practical ScoreField = "chapter_test2_practical"

	FieldQuarter1Practical ScoreField = "quarter1_practical"
	FieldQuarter1Theory    ScoreField = "quarter1_theory"
	FieldQuarter2Practical ScoreField = "quarter2_practical"
	FieldQuarter2Theory    ScoreField = "quarter2_theory"
)

var fieldMaxima = map[ScoreField]float64{
	FieldAttendance:            2.5,
	FieldParticipation:         2.5,
	FieldBehavior:              5,
	FieldHomework:              5,
	FieldQuiz1:                 5,
	FieldQuiz2:                 5,
	FieldQuiz3:                 5,
	FieldQuiz4:                 5,
	FieldChapterTest1Practical: 10,
	FieldChapterTest2Practical: 10,
	FieldQuarter1Practical:     10,
	FieldQuarter1Theory:        10,
	FieldQuarter2Practical:     10,
	FieldQuarter2Theory:        10,
}

// FieldMax returns the documented maximum for a mark field.
func FieldMax(field ScoreField) (float64, bool) {
	max, ok := fieldMaxima[field]
	return max, ok
}

// Phase identifies one of the two assessment quarters within a semester.
type Phase int

const (
	PhaseQ1 Phase = 1
	PhaseQ2 Phase = 2
)

// Valid reports whether the phase is one of the two known quarters.
func (p Phase) Valid() bool {
	return p == PhaseQ1 || p == PhaseQ2
}

// WeeklyFields are the weekly follow-up columns, common to both phases.
func WeeklyFields() []ScoreField {
	return []ScoreField{FieldAttendance, FieldParticipation, FieldBehavior, FieldHomework}
}

// AssessmentFields returns the quarter-assessment columns for a phase.
func AssessmentFields(p Phase) []ScoreField {
	if p == PhaseQ2 {
		return []ScoreField{FieldQuiz3, FieldQuiz4, FieldChapterTest2Practical}
	}
	return []ScoreField{FieldQuiz1, FieldQuiz2, FieldChapterTest1Practical}
}

// ExamFields returns the quarter-exam columns for a phase.
func ExamFields(p Phase) []ScoreField {
	if p == PhaseQ2 {
		return []ScoreField{FieldQuarter2Practical, FieldQuarter2Theory}
	}
	return []ScoreField{FieldQuarter1Practical, FieldQuarter1Theory}
}

// ScoreUpdate is one row of a bulk-scores submission: a student id plus the
// touched fields. A nil value clears the field on the server of record;
// fields absent from the map are left untouched.
type ScoreUpdate struct {
	ID     string
	Fields map[ScoreField]*float64
}

// MarshalJSON flattens the update into the wire shape the server of record
// expects: {"id": "...", "quiz3": 4, "chapter_test2_practical": null}.
func (u ScoreUpdate) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(u.Fields)+1)
	flat["id"] = u.ID
	for field, value := range u.Fields {
		if value == nil {
			flat[string(field)] = nil
			continue
		}
		flat[string(field)] = *value
	}
	return json.Marshal(flat)
}
