package api

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/scorecard/internal/domain/collector"
	"github.com/okian/scorecard/internal/domain/model"
	"github.com/okian/scorecard/internal/domain/types"
	"github.com/okian/scorecard/pkg/logger"
)

// Form field names shared by the template and the parser.
const (
	fieldOverall      = "overall_rating"
	fieldSummary      = "feedback_summary"
	fieldDate         = "assessment_date"
	fieldTime         = "assessment_time"
	fieldFeedback     = "service_feedback"
	fieldRatingPrefix = "rating_"
	fieldNewEmployee  = "new_employee_name"
	fieldAction       = "action"

	actionAddEmployee = "add_employee"
)

// FormsHandler renders the HTML form. Every request is one pass: the
// submitted values are collected, the add action runs if requested and the
// page is rendered from the resulting state.
type FormsHandler struct {
	deps Dependencies
	errs *errorWriter
	tmpl *template.Template
}

// NewFormsHandler creates a new forms handler.
func NewFormsHandler(deps Dependencies, errs *errorWriter) *FormsHandler {
	return &FormsHandler{deps: deps, errs: errs, tmpl: formTemplate}
}

type ratingField struct {
	Name  string
	Label string
	Score int
}

type formPage struct {
	types.View
	Date     string
	Time     string
	Ratings  []ratingField
	Formats  []string
	Variants []model.Variant
	Min, Max struct{ Overall, Score int }
}

// HandleForm handles GET and POST /forms/{variant}.
func (h *FormsHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	slug, err := variantParam(r)
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	v, err := model.Lookup(slug)
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.errs.write(w, r, errBadForm(err))
		return
	}

	view, err := h.deps.Render(r.Context(), sessionID(r), slug, parseForm(r, v))
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	setSession(w, r, view.SessionID)

	page := formPage{
		View:     view,
		Date:     view.Record.Date(),
		Time:     view.Record.Time(),
		Ratings:  make([]ratingField, len(view.Record.Ratings)),
		Variants: h.deps.Variants(),
	}
	for i, rt := range view.Record.Ratings {
		page.Ratings[i] = ratingField{Name: ratingFieldName(i), Label: rt.Criterion, Score: rt.Score}
	}
	for _, f := range h.deps.Formats() {
		page.Formats = append(page.Formats, string(f))
	}
	page.Min.Overall, page.Max.Overall = model.MinOverallRating, model.MaxOverallRating
	page.Min.Score, page.Max.Score = model.MinCriterionScore, model.MaxCriterionScore

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, page); err != nil && h.errs.log != nil {
		h.errs.log.Error(r.Context(), "render form template", logger.Error(err))
	}
}

func ratingFieldName(i int) string {
	return fieldRatingPrefix + strconv.Itoa(i)
}

// parseForm reads the submitted controls. Missing or malformed numbers are
// left out so the collector applies its defaults.
func parseForm(r *http.Request, v model.Variant) collector.Input {
	in := collector.Input{
		OverallRating:   atoi(r.Form.Get(fieldOverall)),
		FeedbackSummary: r.Form.Get(fieldSummary),
		AssessmentDate:  collector.ParseDate(r.Form.Get(fieldDate)),
		AssessmentTime:  collector.ParseTime(r.Form.Get(fieldTime)),
		ServiceFeedback: r.Form.Get(fieldFeedback),
		Ratings:         make(map[string]int, len(v.Criteria)),
		NewEmployeeName: r.Form.Get(fieldNewEmployee),
		AddEmployee:     r.Form.Get(fieldAction) == actionAddEmployee,
	}
	for i, criterion := range v.Criteria {
		raw := r.Form.Get(ratingFieldName(i))
		if n, err := strconv.Atoi(raw); err == nil {
			in.Ratings[criterion] = n
		}
	}
	return in
}

// EncodeForm renders f as the url-encoded body the form posts. Criteria
// absent from f.Ratings are left out so the server applies its default.
func EncodeForm(v model.Variant, f types.FormValues) url.Values {
	form := url.Values{}
	if f.OverallRating != 0 {
		form.Set(fieldOverall, strconv.Itoa(f.OverallRating))
	}
	form.Set(fieldSummary, f.FeedbackSummary)
	form.Set(fieldDate, f.AssessmentDate)
	form.Set(fieldTime, f.AssessmentTime)
	form.Set(fieldFeedback, f.ServiceFeedback)
	for i, criterion := range v.Criteria {
		if score, ok := f.Ratings[criterion]; ok {
			form.Set(ratingFieldName(i), strconv.Itoa(score))
		}
	}
	return form
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
