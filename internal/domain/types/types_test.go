package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/scorecard/internal/domain/model"
	types "github.com/okian/scorecard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromRecord(t *testing.T) {
	Convey("Given a record with names and ratings", t, func() {
		rec := model.Record{
			Variant:         model.ScoreCard,
			OverallRating:   4,
			FeedbackSummary: "Good experience",
			AssessmentDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			AssessmentTime:  time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC),
			ServiceFeedback: "Fast turnaround",
			Ratings:         []model.Rating{{Criterion: "Professionalism", Score: 8}},
			EmployeeNames:   []string{"Alice Smith", "Bob Jones"},
		}

		Convey("When converting for the wire", func() {
			out := types.FromRecord(rec)

			Convey("Then dates, times and both name forms are rendered", func() {
				So(out.AssessmentDate, ShouldEqual, "2024-01-15")
				So(out.AssessmentTime, ShouldEqual, "14:30")
				So(out.EmployeeNames, ShouldResemble, []string{"Alice Smith", "Bob Jones"})
				So(out.JoinedNames, ShouldEqual, "Alice Smith, Bob Jones")
				So(out.Ratings, ShouldResemble, []types.Rating{{Criterion: "Professionalism", Score: 8}})
			})

			Convey("And the copy does not alias the record", func() {
				out.EmployeeNames[0] = "changed"
				So(rec.EmployeeNames[0], ShouldEqual, "Alice Smith")
			})
		})

		Convey("When the name list is nil", func() {
			rec.EmployeeNames = nil
			data, err := json.Marshal(types.FromRecord(rec))

			Convey("Then it encodes as an empty array, not null", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"employee_names":[]`)
				So(string(data), ShouldContainSubstring, `"employee_names_joined":""`)
			})
		})
	})
}

func TestFormValues(t *testing.T) {
	Convey("Given JSON form values", t, func() {
		var fv types.FormValues
		err := json.Unmarshal([]byte(`{"overall_rating":9,"assessment_date":"2024-01-15","assessment_time":"14:30:10","ratings":{"Professionalism":8}}`), &fv)
		So(err, ShouldBeNil)

		Convey("When converting to collector input", func() {
			in := fv.Input()

			Convey("Then dates and times are parsed and values pass through", func() {
				So(in.OverallRating, ShouldEqual, 9)
				So(in.AssessmentDate.Format(model.DateLayout), ShouldEqual, "2024-01-15")
				So(in.AssessmentTime.Format(model.TimeLayout), ShouldEqual, "14:30")
				So(in.Ratings["Professionalism"], ShouldEqual, 8)
				So(in.AddEmployee, ShouldBeFalse)
			})
		})

		Convey("When a date is malformed", func() {
			fv.AssessmentDate = "15/01/2024"

			Convey("Then it is left zero for the collector to default", func() {
				So(fv.Input().AssessmentDate.IsZero(), ShouldBeTrue)
			})
		})
	})
}
