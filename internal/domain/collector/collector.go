// Package collector turns the raw values of one form interaction into the
// bounded values the form controls would have produced.
//
// Collect is invoked once per user action. It is pure apart from the
// explicit add-employee action, which appends to the caller's session.
package collector

import (
	"fmt"
	"time"

	"github.com/okian/scorecard/internal/domain/model"
)

// NameList is the session-scoped state the add action mutates.
type NameList interface {
	AddName(name string) bool
}

// Input carries what the user submitted. Zero values mean "left untouched":
// an OverallRating of 0 falls back to the range minimum, zero dates fall back
// to now, and criteria missing from Ratings fall back to the default score.
type Input struct {
	OverallRating   int
	FeedbackSummary string
	AssessmentDate  time.Time
	AssessmentTime  time.Time
	ServiceFeedback string
	Ratings         map[string]int

	NewEmployeeName string
	AddEmployee     bool
}

// Values are the current, range-clamped control values.
type Values struct {
	OverallRating   int
	FeedbackSummary string
	AssessmentDate  time.Time
	AssessmentTime  time.Time
	ServiceFeedback string
	Ratings         []model.Rating
}

// Collect clamps in to the controls' ranges, fills defaults and performs the
// add-employee action against state. The returned notice is non-empty only
// when a name was added.
func Collect(v model.Variant, state NameList, in Input, now time.Time) (Values, string) {
	out := Values{
		OverallRating:   clamp(in.OverallRating, model.MinOverallRating, model.MaxOverallRating),
		FeedbackSummary: in.FeedbackSummary,
		AssessmentDate:  in.AssessmentDate,
		AssessmentTime:  in.AssessmentTime,
		ServiceFeedback: in.ServiceFeedback,
		Ratings:         make([]model.Rating, len(v.Criteria)),
	}
	if out.AssessmentDate.IsZero() {
		out.AssessmentDate = now
	}
	if out.AssessmentTime.IsZero() {
		out.AssessmentTime = now
	}

	for i, criterion := range v.Criteria {
		score, ok := in.Ratings[criterion]
		if !ok {
			score = model.DefaultCriterionScore
		}
		out.Ratings[i] = model.Rating{
			Criterion: criterion,
			Score:     clamp(score, model.MinCriterionScore, model.MaxCriterionScore),
		}
	}

	var notice string
	if v.CollectsNames && in.AddEmployee && state != nil && state.AddName(in.NewEmployeeName) {
		notice = fmt.Sprintf("Employee '%s' added!", in.NewEmployeeName)
	}
	return out, notice
}

// ParseDate parses a date control value. Unparsable input yields the zero time.
func ParseDate(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseTime parses a time control value, with or without seconds.
// Unparsable input yields the zero time.
func ParseTime(s string) time.Time {
	for _, layout := range []string{model.TimeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
