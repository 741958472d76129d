// Package types contains the shapes exchanged between the service and its
// transports: the per-pass View and the JSON documents of the API.
package types

import (
	"github.com/okian/scorecard/internal/domain/collector"
	"github.com/okian/scorecard/internal/domain/model"
)

// View is everything one render pass produces for a form page.
type View struct {
	SessionID string
	Variant   model.Variant
	Values    collector.Values
	Record    model.Record
	Notice    string
	Added     bool
}

// Rating is the JSON form of model.Rating.
type Rating struct {
	Criterion string `json:"criterion"`
	Score     int    `json:"score"`
}

// Record is the JSON form of model.Record. Names are exposed both as a list
// and as the joined string written to the CSV cell.
type Record struct {
	Variant         string   `json:"variant"`
	OverallRating   int      `json:"overall_rating"`
	FeedbackSummary string   `json:"feedback_summary"`
	AssessmentDate  string   `json:"assessment_date"`
	AssessmentTime  string   `json:"assessment_time"`
	ServiceFeedback string   `json:"service_feedback"`
	Ratings         []Rating `json:"ratings"`
	EmployeeNames   []string `json:"employee_names"`
	JoinedNames     string   `json:"employee_names_joined"`
}

// FromRecord converts a model.Record for the wire.
func FromRecord(rec model.Record) Record {
	out := Record{
		Variant:         rec.Variant,
		OverallRating:   rec.OverallRating,
		FeedbackSummary: rec.FeedbackSummary,
		AssessmentDate:  rec.Date(),
		AssessmentTime:  rec.Time(),
		ServiceFeedback: rec.ServiceFeedback,
		Ratings:         make([]Rating, len(rec.Ratings)),
		EmployeeNames:   append([]string{}, rec.EmployeeNames...),
		JoinedNames:     rec.JoinedNames(),
	}
	for i, r := range rec.Ratings {
		out.Ratings[i] = Rating{Criterion: r.Criterion, Score: r.Score}
	}
	return out
}

// FormValues is the JSON body accepted in place of a submitted form.
// Omitted fields take the same defaults as untouched form controls.
type FormValues struct {
	OverallRating   int            `json:"overall_rating" yaml:"overall_rating"`
	FeedbackSummary string         `json:"feedback_summary" yaml:"feedback_summary"`
	AssessmentDate  string         `json:"assessment_date" yaml:"assessment_date"`
	AssessmentTime  string         `json:"assessment_time" yaml:"assessment_time"`
	ServiceFeedback string         `json:"service_feedback" yaml:"service_feedback"`
	Ratings         map[string]int `json:"ratings" yaml:"ratings"`
}

// Input converts the values for the collector.
func (f FormValues) Input() collector.Input {
	return collector.Input{
		OverallRating:   f.OverallRating,
		FeedbackSummary: f.FeedbackSummary,
		AssessmentDate:  collector.ParseDate(f.AssessmentDate),
		AssessmentTime:  collector.ParseTime(f.AssessmentTime),
		ServiceFeedback: f.ServiceFeedback,
		Ratings:         f.Ratings,
	}
}

// EmployeeRequest is the body of POST /api/forms/{variant}/employees.
type EmployeeRequest struct {
	Name string `json:"name"`
}

// EmployeeResponse reports the outcome of an add action.
type EmployeeResponse struct {
	Added         bool     `json:"added"`
	Notice        string   `json:"notice,omitempty"`
	EmployeeNames []string `json:"employee_names"`
}
