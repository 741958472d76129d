// Package assembler merges collected control values and the session's
// employee names into a Record.
package assembler

import (
	"github.com/okian/scorecard/internal/domain/collector"
	"github.com/okian/scorecard/internal/domain/model"
)

// Assemble builds the Record for one render pass. It copies its inputs, so
// later changes to values or names do not leak into the Record. Variants
// that do not collect names always produce an empty name list.
func Assemble(v model.Variant, values collector.Values, names []string) model.Record {
	rec := model.Record{
		Variant:         v.Slug,
		OverallRating:   values.OverallRating,
		FeedbackSummary: values.FeedbackSummary,
		AssessmentDate:  values.AssessmentDate,
		AssessmentTime:  values.AssessmentTime,
		ServiceFeedback: values.ServiceFeedback,
		Ratings:         append([]model.Rating(nil), values.Ratings...),
		EmployeeNames:   []string{},
	}
	if v.CollectsNames {
		rec.EmployeeNames = append(rec.EmployeeNames, names...)
	}
	return rec
}
