package pdfexport

import (
	"context"
	"strconv"

	"github.com/okian/scorecard/internal/adapters/export"
	"github.com/okian/scorecard/internal/domain/model"
)

// MIME is the content type offered with PDF downloads.
const MIME = "application/octet-stream"

// Exporter implements export.Exporter for PDF.
type Exporter struct {
	opts []DocumentOption
}

// New returns a PDF exporter. Options apply to every document it builds.
func New(opts ...DocumentOption) *Exporter {
	return &Exporter{opts: opts}
}

// Format implements export.Exporter.
func (e *Exporter) Format() export.Format { return export.PDF }

// Export implements export.Exporter.
func (e *Exporter) Export(_ context.Context, v model.Variant, rec model.Record) (export.Artifact, error) {
	doc, err := Render(v, rec, e.opts...)
	if err != nil {
		return export.Artifact{}, err
	}
	data, err := doc.Bytes()
	if err != nil {
		return export.Artifact{}, err
	}
	return export.Artifact{FileName: v.FileName("pdf"), MIME: MIME, Data: data}, nil
}

// Render lays out rec: one section per scalar field, then the ratings, then
// the involved staff for variants that collect names.
func Render(v model.Variant, rec model.Record, opts ...DocumentOption) (*Document, error) {
	doc, err := NewDocument(v.DocumentTitle, opts...)
	if err != nil {
		return nil, err
	}
	doc.WriteHeader()
	doc.AddPage()

	scalars := []struct{ title, body string }{
		{v.OverallLabel, strconv.Itoa(rec.OverallRating)},
		{model.FeedbackSummaryTitle, rec.FeedbackSummary},
		{model.AssessmentDateTitle, rec.Date()},
		{model.AssessmentTimeTitle, rec.Time()},
		{v.FeedbackLabel, rec.ServiceFeedback},
	}
	for _, s := range scalars {
		if err := doc.WriteSection(s.title, s.body); err != nil {
			return nil, err
		}
	}

	if err := doc.WriteSection(v.RatingsLabel, rec.RatingLines()...); err != nil {
		return nil, err
	}

	if v.CollectsNames {
		if err := doc.WriteSection(model.InvolvedStaffTitle, rec.EmployeeNames...); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
