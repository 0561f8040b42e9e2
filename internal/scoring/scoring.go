// Package scoring computes capped composite totals and performance levels
// from raw per-criterion marks. It is the single source of the marks
// formulas; every view derives its totals from here instead of redefining
// them.
package scoring

import (
	"math"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
)

// Caps for each composite total domain.
const (
	WeeklyTotalMax     = 15.0
	AssessmentTotalMax = 15.0
	ExamTotalMax       = 20.0
	CombinedTotalMax   = 30.0
	FinalTotalMax      = 50.0
)

// Classification thresholds. Fixed constants, not configurable per class or
// grade.
const (
	weeklyOnLevelMin    = 13.0
	weeklyApproachMin   = 10.0
	combinedOnLevelMin  = 25.0
	combinedApproachMin = 20.0
	finalOnLevelMin     = 42.0
	finalApproachMin    = 35.0
)

// Level is a categorical performance classification.
type Level string

const (
	LevelOnLevel  Level = "on_level"
	LevelApproach Level = "approach"
	LevelBelow    Level = "below"
	LevelNoData   Level = "no_data"
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// capTotal rounds the sum to two decimals, then clamps to the domain cap.
// The clamp is idempotent: capping an already-capped value is a no-op.
func capTotal(sum, max float64) float64 {
	return math.Min(max, Round2(sum))
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// WeeklyFollowUpTotal sums attendance, participation, behavior and homework,
// capped at 15. Missing fields count as zero.
func WeeklyFollowUpTotal(r *models.StudentRecord) float64 {
	sum := orZero(r.Attendance) + orZero(r.Participation) + orZero(r.Behavior) + orZero(r.Homework)
	return capTotal(sum, WeeklyTotalMax)
}

// QuarterAssessmentTotal takes the best of the phase's two quizzes plus the
// chapter test practical, capped at 15.
func QuarterAssessmentTotal(r *models.StudentRecord, phase models.Phase) float64 {
	var bestQuiz, test float64
	if phase == models.PhaseQ2 {
		bestQuiz = math.Max(orZero(r.Quiz3), orZero(r.Quiz4))
		test = orZero(r.ChapterTest2Practical)
	} else {
		bestQuiz = math.Max(orZero(r.Quiz1), orZero(r.Quiz2))
		test = orZero(r.ChapterTest1Practical)
	}
	return capTotal(bestQuiz+test, AssessmentTotalMax)
}

// QuarterExamTotal sums the phase's practical and theory exam marks, capped
// at 20.
func QuarterExamTotal(r *models.StudentRecord, phase models.Phase) float64 {
	var sum float64
	if phase == models.PhaseQ2 {
		sum = orZero(r.Quarter2Practical) + orZero(r.Quarter2Theory)
	} else {
		sum = orZero(r.Quarter1Practical) + orZero(r.Quarter1Theory)
	}
	return capTotal(sum, ExamTotalMax)
}

// phaseAverage returns the server-carried weekly average for the phase, nil
// when absent.
func phaseAverage(r *models.StudentRecord, phase models.Phase) *float64 {
	if r == nil {
		return nil
	}
	if phase == models.PhaseQ2 {
		return r.AvgWeeks10To18
	}
	return r.AvgFirst9Weeks
}

// CombinedAssessmentTotal merges the baseline weekly component with the
// current record's assessment total, capped at 30. When the server carries a
// pre-aggregated weekly average for the phase it replaces the weekly
// follow-up sum; otherwise the sum is recomputed from the baseline's raw
// fields. The baseline supplies the frozen portion; the current record may be
// a live edit-session view of the same student, so a preview recomputes
// correctly without re-deriving the frozen part.
func CombinedAssessmentTotal(base, cur *models.StudentRecord, phase models.Phase) float64 {
	weekly := WeeklyFollowUpTotal(base)
	if avg := phaseAverage(base, phase); avg != nil {
		weekly = capTotal(*avg, WeeklyTotalMax)
	}
	return capTotal(weekly+QuarterAssessmentTotal(cur, phase), CombinedTotalMax)
}

// FinalExamTotal adds the quarter exam marks on top of the baseline's own
// combined assessment total, capped at 50. The assessment portion is always
// frozen at the baseline record.
func FinalExamTotal(base, cur *models.StudentRecord, phase models.Phase) float64 {
	assessmentPart := CombinedAssessmentTotal(base, base, phase)
	return capTotal(assessmentPart+QuarterExamTotal(cur, phase), FinalTotalMax)
}

// HasWeeklyMarks reports whether any weekly follow-up field has been entered,
// distinguishing "genuinely scored 0" from "not yet entered".
func HasWeeklyMarks(r *models.StudentRecord) bool {
	return r != nil && (r.Attendance != nil || r.Participation != nil || r.Behavior != nil || r.Homework != nil)
}

// HasAssessmentMarks reports whether any of the phase's quiz or chapter test
// fields has been entered.
func HasAssessmentMarks(r *models.StudentRecord, phase models.Phase) bool {
	if r == nil {
		return false
	}
	if phase == models.PhaseQ2 {
		return r.Quiz3 != nil || r.Quiz4 != nil || r.ChapterTest2Practical != nil
	}
	return r.Quiz1 != nil || r.Quiz2 != nil || r.ChapterTest1Practical != nil
}

// HasExamMarks reports whether either of the phase's quarter exam fields has
// been entered.
func HasExamMarks(r *models.StudentRecord, phase models.Phase) bool {
	if r == nil {
		return false
	}
	if phase == models.PhaseQ2 {
		return r.Quarter2Practical != nil || r.Quarter2Theory != nil
	}
	return r.Quarter1Practical != nil || r.Quarter1Theory != nil
}

// ClassifyWeekly maps the weekly follow-up total to a performance level.
func ClassifyWeekly(r *models.StudentRecord) Level {
	if !HasWeeklyMarks(r) {
		return LevelNoData
	}
	return classify(WeeklyFollowUpTotal(r), weeklyOnLevelMin, weeklyApproachMin)
}

// ClassifyCombinedAssessment maps the combined assessment total to a level.
// Presence spans the baseline's weekly inputs (raw fields or the carried
// average) and the current record's assessment inputs.
func ClassifyCombinedAssessment(base, cur *models.StudentRecord, phase models.Phase) Level {
	hasWeekly := phaseAverage(base, phase) != nil || HasWeeklyMarks(base)
	if !hasWeekly && !HasAssessmentMarks(cur, phase) {
		return LevelNoData
	}
	return classify(CombinedAssessmentTotal(base, cur, phase), combinedOnLevelMin, combinedApproachMin)
}

// ClassifyFinalExam maps the final exam total to a level. Presence spans the
// baseline's assessment inputs and the current record's exam inputs.
func ClassifyFinalExam(base, cur *models.StudentRecord, phase models.Phase) Level {
	hasAssessment := phaseAverage(base, phase) != nil || HasAssessmentMarks(base, phase)
	if !hasAssessment && !HasExamMarks(cur, phase) {
		return LevelNoData
	}
	return classify(FinalExamTotal(base, cur, phase), finalOnLevelMin, finalApproachMin)
}

func classify(total, onLevelMin, approachMin float64) Level {
	switch {
	case total >= onLevelMin:
		return LevelOnLevel
	case total >= approachMin:
		return LevelApproach
	default:
		return LevelBelow
	}
}
