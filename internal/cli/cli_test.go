package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/scorecard/internal/adapters/export"
	"github.com/okian/scorecard/internal/adapters/http/api"
	app "github.com/okian/scorecard/internal/app"
	"github.com/okian/scorecard/internal/domain/model"
	"github.com/okian/scorecard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const scorecardYAML = `variant: scorecard
overall_rating: 4
feedback_summary: Good
assessment_date: "2024-01-15"
assessment_time: "14:30"
service_feedback: Fast
ratings:
  Professionalism: 8
  Problem Solving: 12
employee_names:
  - Alice Smith
  - Bob Jones
`

func TestMain(m *testing.M) {
	if err := logger.InitWithWriter(io.Discard, logger.FormatText); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func writeRecord(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write record: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestLoadRecordFile(t *testing.T) {
	Convey("Given a record file", t, func() {
		Convey("When it is well formed", func() {
			rf, err := LoadRecordFile(writeRecord(t, scorecardYAML))

			Convey("Then the inline form values and names decode", func() {
				So(err, ShouldBeNil)
				So(rf.Variant, ShouldEqual, model.ScoreCard)
				So(rf.OverallRating, ShouldEqual, 4)
				So(rf.AssessmentDate, ShouldEqual, "2024-01-15")
				So(rf.Ratings["Problem Solving"], ShouldEqual, 12)
				So(rf.EmployeeNames, ShouldResemble, []string{"Alice Smith", "Bob Jones"})
			})
		})

		Convey("When it carries an unknown key", func() {
			_, err := LoadRecordFile(writeRecord(t, "overall_ratin: 3\n"))

			Convey("Then it is rejected", func() {
				So(errors.Is(err, ErrReadRecord), ShouldBeTrue)
			})
		})

		Convey("When it does not exist", func() {
			_, err := LoadRecordFile(filepath.Join(t.TempDir(), "missing.yaml"))
			So(errors.Is(err, ErrReadRecord), ShouldBeTrue)
		})
	})
}

func TestRunExport(t *testing.T) {
	Convey("Given a scorecard record file", t, func() {
		ctx := context.Background()
		in := writeRecord(t, scorecardYAML)
		out := filepath.Join(t.TempDir(), "exports")
		var stdout bytes.Buffer

		Convey("When exporting CSV", func() {
			path, err := runExport(ctx, &stdout, exportOptions{format: "csv", in: in, out: out})

			Convey("Then the single-row file is written", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, filepath.Join(out, "robert_half_score_card.csv"))
				So(stdout.String(), ShouldEqual, path+"\n")

				lines := strings.Split(strings.TrimSuffix(readFile(t, path), "\n"), "\n")
				So(lines, ShouldHaveLength, 2)
				So(lines[0], ShouldEqual, "Overall Rating,Feedback Summary,Assessment Date,Assessment Time,Recruitment Feedback,Employee Names,Performance Ratings")
				So(lines[1], ShouldStartWith, `4,Good,2024-01-15,14:30,Fast,"Alice Smith, Bob Jones","Professionalism: 8/10; Responsiveness: 5/10;`)
				So(lines[1], ShouldContainSubstring, "Problem Solving: 10/10")
			})
		})

		Convey("When the variant flag overrides the file", func() {
			path, err := runExport(ctx, &stdout, exportOptions{variant: model.ServiceFeedback, format: "pdf", in: in, out: out})

			Convey("Then the feedback document is written", func() {
				So(err, ShouldBeNil)
				So(filepath.Base(path), ShouldEqual, "robert_half_feedback.pdf")
				So(readFile(t, path), ShouldStartWith, "%PDF-")
			})
		})

		Convey("When the format is unknown", func() {
			_, err := runExport(ctx, &stdout, exportOptions{format: "docx", in: in, out: out})

			Convey("Then nothing is written", func() {
				So(errors.Is(err, export.ErrUnknownFormat), ShouldBeTrue)
				_, statErr := os.Stat(out)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("When the variant is unknown", func() {
			_, err := runExport(ctx, &stdout, exportOptions{variant: "survey", format: "csv", in: in, out: out})
			So(errors.Is(err, model.ErrUnknownVariant), ShouldBeTrue)
		})
	})
}

func TestRootCommand(t *testing.T) {
	Convey("Given the root command", t, func() {
		var stdout, stderr bytes.Buffer
		root := NewRootCommand()
		root.SetOut(&stdout)
		root.SetErr(&stderr)

		Convey("When listing variants", func() {
			root.SetArgs([]string{"variants"})
			err := root.Execute()

			Convey("Then both built-ins are printed", func() {
				So(err, ShouldBeNil)
				So(stdout.String(), ShouldContainSubstring, "SLUG")
				So(stdout.String(), ShouldContainSubstring, "Robert Half Score Card Tool")
				So(stdout.String(), ShouldContainSubstring, "Rate Robert Half Staffing Solutions")
			})
		})

		Convey("When exporting XLSX through flags", func() {
			out := t.TempDir()
			root.SetArgs([]string{"export", "--format", "xlsx", "--in", writeRecord(t, scorecardYAML), "--out", out})
			err := root.Execute()

			Convey("Then a workbook is written", func() {
				So(err, ShouldBeNil)
				So(readFile(t, filepath.Join(out, "robert_half_score_card.xlsx")), ShouldStartWith, "PK")
			})
		})

		Convey("When --in is missing", func() {
			root.SetArgs([]string{"export"})
			So(root.Execute(), ShouldNotBeNil)
		})
	})
}

func TestRunSubmit(t *testing.T) {
	Convey("Given a running form server", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithLogger(logger.Get()))
		mux := http.NewServeMux()
		api.NewServer(svc, svc, api.WithLogger(logger.Get())).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		in := writeRecord(t, scorecardYAML)
		out := t.TempDir()
		var stdout bytes.Buffer
		opts := submitOptions{baseURL: srv.URL + "/", format: "csv", in: in, out: out, timeout: 5 * time.Second}

		Convey("When the record is replayed", func() {
			path, err := runSubmit(ctx, &stdout, opts)

			Convey("Then the names added over the API appear in the download", func() {
				So(err, ShouldBeNil)
				So(filepath.Base(path), ShouldEqual, "robert_half_score_card.csv")
				body := readFile(t, path)
				So(body, ShouldContainSubstring, `4,Good,2024-01-15,14:30,Fast,"Alice Smith, Bob Jones"`)
				So(body, ShouldContainSubstring, "Problem Solving: 10/10")
			})
		})

		Convey("When the server rejects the format", func() {
			opts.format = "docx"
			_, err := runSubmit(ctx, &stdout, opts)

			Convey("Then the error code is surfaced", func() {
				So(errors.Is(err, ErrRemote), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "unknown_format")
			})
		})
	})
}
