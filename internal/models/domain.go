package models

// MarkDomain names one of the three mark-entry surfaces. Each surface
// submits only its own field subset, never all fields at once.
type MarkDomain string

const (
	DomainWeekly     MarkDomain = "weekly"
	DomainAssessment MarkDomain = "assessment"
	DomainExam       MarkDomain = "exam"
)

// Valid reports whether the domain is one of the known surfaces.
func (d MarkDomain) Valid() bool {
	switch d {
	case DomainWeekly, DomainAssessment, DomainExam:
		return true
	}
	return false
}

// DomainFields returns the field subset a surface owns for a phase. The
// per-surface asymmetry (weekly pages clear weekly fields only, assessment
// pages assessment fields only) is deliberate and preserved.
func DomainFields(d MarkDomain, p Phase) []ScoreField {
	switch d {
	case DomainWeekly:
		return WeeklyFields()
	case DomainExam:
		return ExamFields(p)
	default:
		return AssessmentFields(p)
	}
}
