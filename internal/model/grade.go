package model

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Grades lists every grade from best to worst.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeF}

// GradeFor maps a retention score to a letter grade.
func GradeFor(score float64) Grade {
	switch {
	case score >= 0.9:
		return GradeA
	case score >= 0.8:
		return GradeB
	case score >= 0.7:
		return GradeC
	case score >= 0.6:
		return GradeD
	default:
		return GradeF
	}
}

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// DeriveStatus builds the status label for sources that only carry a score.
func DeriveStatus(score float64, passed bool) string {
	label := StatusFail
	if passed {
		label = StatusPass
	}
	return label + " " + string(GradeFor(score))
}

// DefaultPassThreshold is the score at or above which a test passes when
// the source does not say otherwise.
const DefaultPassThreshold = 0.7
