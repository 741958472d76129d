// Package csvexport writes a Record as a single-row CSV file.
package csvexport

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/okian/scorecard/internal/adapters/export"
	"github.com/okian/scorecard/internal/domain/model"
)

// MIME is the content type offered with CSV downloads.
const MIME = "text/csv"

// Exporter implements export.Exporter for CSV.
type Exporter struct{}

// New returns a CSV exporter.
func New() *Exporter { return &Exporter{} }

// Format implements export.Exporter.
func (e *Exporter) Format() export.Format { return export.CSV }

// Export implements export.Exporter.
func (e *Exporter) Export(_ context.Context, v model.Variant, rec model.Record) (export.Artifact, error) {
	data, err := Encode(v, rec)
	if err != nil {
		return export.Artifact{}, err
	}
	return export.Artifact{FileName: v.FileName("csv"), MIME: MIME, Data: data}, nil
}

// Header returns the fixed column order for a variant.
func Header(v model.Variant) []string {
	return []string{
		model.OverallRatingTitle,
		model.FeedbackSummaryTitle,
		model.AssessmentDateTitle,
		model.AssessmentTimeTitle,
		v.FeedbackLabel,
		model.EmployeeNamesTitle,
		v.RatingsLabel,
	}
}

// Row returns the data row matching Header.
func Row(rec model.Record) []string {
	return []string{
		strconv.Itoa(rec.OverallRating),
		rec.FeedbackSummary,
		rec.Date(),
		rec.Time(),
		rec.ServiceFeedback,
		rec.JoinedNames(),
		rec.RatingsString(),
	}
}

// Encode renders the header row and one data row as UTF-8 CSV.
func Encode(v model.Variant, rec model.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll([][]string{Header(v), Row(rec)}); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
