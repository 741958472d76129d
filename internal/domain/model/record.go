// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"strings"
	"time"
)

// Rating bounds enforced by the form controls.
const (
	MinOverallRating      = 1
	MaxOverallRating      = 5
	MinCriterionScore     = 0
	MaxCriterionScore     = 10
	DefaultCriterionScore = 5
)

// Layouts used when a date or time is rendered as text.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Rating is the score given to a single criterion.
type Rating struct {
	Criterion string
	Score     int
}

// String renders the rating as "<criterion>: <score>/10".
func (r Rating) String() string {
	return r.Criterion + ": " + strconv.Itoa(r.Score) + "/" + strconv.Itoa(MaxCriterionScore)
}

// Record is the flat set of fields collected from one feedback session.
// Ratings always hold the variant's criteria once each, in declaration order.
type Record struct {
	Variant         string
	OverallRating   int
	FeedbackSummary string
	AssessmentDate  time.Time
	AssessmentTime  time.Time
	ServiceFeedback string
	Ratings         []Rating
	EmployeeNames   []string
}

// Date renders the assessment date.
func (r Record) Date() string { return r.AssessmentDate.Format(DateLayout) }

// Time renders the assessment time of day.
func (r Record) Time() string { return r.AssessmentTime.Format(TimeLayout) }

// JoinedNames returns the employee names as one comma-separated string.
// An empty list yields the empty string.
func (r Record) JoinedNames() string {
	return strings.Join(r.EmployeeNames, ", ")
}

// RatingLines returns one "<criterion>: <score>/10" line per rating.
func (r Record) RatingLines() []string {
	lines := make([]string, len(r.Ratings))
	for i, rating := range r.Ratings {
		lines[i] = rating.String()
	}
	return lines
}

// RatingsString embeds the whole ratings mapping in a single string.
func (r Record) RatingsString() string {
	return strings.Join(r.RatingLines(), "; ")
}
