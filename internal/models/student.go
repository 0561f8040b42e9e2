package models

// StudentRecord is a student's baseline mark sheet for one week, as last
// fetched from the server of record. Absent fields mean "not yet entered",
// never zero.
type StudentRecord struct {
	ID        string `json:"id"`
	ClassID   string `json:"class_id"`
	ClassName string `json:"class_name,omitempty"`
	FullName  string `json:"full_name"`

	Attendance    *float64 `json:"attendance,omitempty"`
	Participation *float64 `json:"participation,omitempty"`
	Behavior      *float64 `json:"behavior,omitempty"`
	Homework      *float64 `json:"homework,omitempty"`

	Quiz1 *float64 `json:"quiz1,omitempty"`
	Quiz2 *float64 `json:"quiz2,omitempty"`
	Quiz3 *float64 `json:"quiz3,omitempty"`
	Quiz4 *float64 `json:"quiz4,omitempty"`

	ChapterTest1Practical *float64 `json:"chapter_test1_practical,omitempty"`
	ChapterTest2Practical *float64 `json:"chapter_test2_practical,omitempty"`

	Quarter1Practical *float64 `json:"quarter1_practical,omitempty"`
	Quarter1Theory    *float64 `json:"quarter1_theory,omitempty"`
	Quarter2Practical *float64 `json:"quarter2_practical,omitempty"`
	Quarter2Theory    *float64 `json:"quarter2_theory,omitempty"`

	// Pre-aggregated weekly averages carried from the server when available.
	AvgFirst9Weeks *float64 `json:"avg_first_9_weeks,omitempty"`
	AvgWeeks10To18 *float64 `json:"avg_weeks_10_18,omitempty"`

	// Server-precomputed combined totals and levels per assessment phase.
	AssessmentQ1CombinedTotal    *float64 `json:"assessment_q1_combined_total,omitempty"`
	AssessmentQ1PerformanceLevel *string  `json:"assessment_q1_performance_level,omitempty"`
	AssessmentQ2CombinedTotal    *float64 `json:"assessment_q2_combined_total,omitempty"`
	AssessmentQ2PerformanceLevel *string  `json:"assessment_q2_performance_level,omitempty"`
}

// Score returns the raw value for a named mark field, nil when absent or the
// field is unknown.
func (s *StudentRecord) Score(field ScoreField) *float64 {
	if s == nil {
		return nil
	}
	switch field {
	case FieldAttendance:
		return s.Attendance
	case FieldParticipation:
		return s.Participation
	case FieldBehavior:
		return s.Behavior
	case FieldHomework:
		return s.Homework
	case FieldQuiz1:
		return s.Quiz1
	case FieldQuiz2:
		return s.Quiz2
	case FieldQuiz3:
		return s.Quiz3
	case FieldQuiz4:
		return s.Quiz4
	case FieldChapterTest1Practical:
		return s.ChapterTest1Practical
	case FieldChapterTest2Practical:
		return s.ChapterTest2Practical
	case FieldQuarter1Practical:
		return s.Quarter1Practical
	case FieldQuarter1Theory:
		return s.Quarter1Theory
	case FieldQuarter2Practical:
		return s.Quarter2Practical
	case FieldQuarter2Theory:
		return s.Quarter2Theory
	}
	return nil
}

// SetScore overwrites one mark field. Unknown fields are ignored.
func (s *StudentRecord) SetScore(field ScoreField, value *float64) {
	switch field {
	case FieldAttendance:
		s.Attendance = value
	case FieldParticipation:
		s.Participation = value
	case FieldBehavior:
		s.Behavior = value
	case FieldHomework:
		s.Homework = value
	case FieldQuiz1:
		s.Quiz1 = value
	case FieldQuiz2:
		s.Quiz2 = value
	case FieldQuiz3:
		s.Quiz3 = value
	case FieldQuiz4:
		s.Quiz4 = value
	case FieldChapterTest1Practical:
		s.ChapterTest1Practical = value
	case FieldChapterTest2Practical:
		s.ChapterTest2Practical = value
	case FieldQuarter1Practical:
		s.Quarter1Practical = value
	case FieldQuarter1Theory:
		s.Quarter1Theory = value
	case FieldQuarter2Practical:
		s.Quarter2Practical = value
	case FieldQuarter2Theory:
		s.Quarter2Theory = value
	}
}

// StudentFilter narrows the marks listing.
type StudentFilter struct {
	WeekID      string
	ClassID     string
	Search      string
	Performance string
	MinScore    *float64
	MaxScore    *float64
}
