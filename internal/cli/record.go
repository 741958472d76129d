package cli

import (
	"fmt"
	"os"

	"github.com/okian/scorecard/internal/domain/model"
	"github.com/okian/scorecard/internal/domain/types"
	"gopkg.in/yaml.v3"
)

// RecordFile is the YAML document the CLI reads, e.g.
//
//	variant: scorecard
//	overall_rating: 4
//	feedback_summary: Quick turnaround
//	assessment_date: 2024-01-15
//	assessment_time: "14:30"
//	service_feedback: Clear communication
//	ratings:
//	  Professionalism: 8
//	employee_names: [Alice Smith, Bob Jones]
type RecordFile struct {
	types.FormValues `yaml:",inline"`

	Variant       string   `yaml:"variant"`
	EmployeeNames []string `yaml:"employee_names"`
}

// LoadRecordFile decodes the record file at path. Unknown keys are rejected
// so a misspelt criterion does not silently fall back to its default.
func LoadRecordFile(path string) (RecordFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return RecordFile{}, fmt.Errorf("%w: %w", ErrReadRecord, err)
	}
	defer f.Close()

	var rf RecordFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil {
		return RecordFile{}, fmt.Errorf("%w: %s: %w", ErrReadRecord, path, err)
	}
	return rf, nil
}

// resolveVariant picks the flag value, then the file's, then the scorecard.
func resolveVariant(flag string, rf RecordFile) (model.Variant, error) {
	slug := flag
	if slug == "" {
		slug = rf.Variant
	}
	if slug == "" {
		slug = model.ScoreCard
	}
	return model.Lookup(slug)
}
