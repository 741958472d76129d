package model

import "fmt"

// Variant describes one flavour of the feedback form. Variants differ only in
// labels, criteria and whether employee names are collected.
type Variant struct {
	Slug          string   `json:"slug"`
	PageTitle     string   `json:"page_title"`
	DocumentTitle string   `json:"document_title"`
	OverallLabel  string   `json:"overall_label"`
	FeedbackLabel string   `json:"feedback_label"`
	RatingsLabel  string   `json:"ratings_label"`
	Criteria      []string `json:"criteria"`
	CollectsNames bool     `json:"collects_names"`
	FileBase      string   `json:"file_base"`
}

// Section and column titles shared by every variant.
const (
	OverallRatingTitle   = "Overall Rating"
	FeedbackSummaryTitle = "Feedback Summary"
	AssessmentDateTitle  = "Assessment Date"
	AssessmentTimeTitle  = "Assessment Time"
	EmployeeNamesTitle   = "Employee Names"
	InvolvedStaffTitle   = "Involved Staff"
)

// Built-in variant slugs.
const (
	ScoreCard       = "scorecard"
	ServiceFeedback = "feedback"
)

var variants = []Variant{
	{
		Slug:          ScoreCard,
		PageTitle:     "Robert Half Score Card Tool",
		DocumentTitle: "Robert Half Score Card",
		OverallLabel:  OverallRatingTitle,
		FeedbackLabel: "Recruitment Feedback",
		RatingsLabel:  "Performance Ratings",
		Criteria: []string{
			"Professionalism",
			"Responsiveness",
			"Attention to Detail",
			"Client Interaction",
			"Problem Solving",
			"Knowledge of Industry",
		},
		CollectsNames: true,
		FileBase:      "robert_half_score_card",
	},
	{
		Slug:          ServiceFeedback,
		PageTitle:     "Rate Robert Half Staffing Solutions",
		DocumentTitle: "Robert Half Service Feedback",
		OverallLabel:  "Overall Service Rating",
		FeedbackLabel: "Service Experience",
		RatingsLabel:  "Service Ratings",
		Criteria: []string{
			"Professionalism of Staff",
			"Clarity of Communication",
			"Response Time",
			"Knowledge of Industry",
			"Supportiveness During Recruitment",
			"Helpfulness in Finding Opportunities",
		},
		CollectsNames: false,
		FileBase:      "robert_half_feedback",
	},
}

// Lookup returns the variant registered under slug.
func Lookup(slug string) (Variant, error) {
	for _, v := range variants {
		if v.Slug == slug {
			return v.clone(), nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, slug)
}

// All returns every registered variant in declaration order.
func All() []Variant {
	out := make([]Variant, len(variants))
	for i, v := range variants {
		out[i] = v.clone()
	}
	return out
}

// FileName returns the download name for the given extension, e.g. "csv".
func (v Variant) FileName(ext string) string {
	return v.FileBase + "." + ext
}

func (v Variant) clone() Variant {
	v.Criteria = append([]string(nil), v.Criteria...)
	return v
}
