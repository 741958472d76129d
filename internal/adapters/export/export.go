// Package export turns a Record into downloadable artifacts.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/scorecard/internal/domain/model"
	"github.com/okian/scorecard/pkg/metrics"
)

// Format names a supported output format.
type Format string

// Supported formats.
const (
	CSV  Format = "csv"
	PDF  Format = "pdf"
	XLSX Format = "xlsx"
)

// Artifact is an in-memory file ready to be offered for download.
type Artifact struct {
	FileName string
	MIME     string
	Data     []byte
}

// Exporter serializes one Record for a variant.
type Exporter interface {
	Format() Format
	Export(ctx context.Context, v model.Variant, rec model.Record) (Artifact, error)
}

// Registry dispatches to the exporter registered for a format.
type Registry struct {
	exporters map[Format]Exporter
	order     []Format
}

// NewRegistry creates a registry holding exporters.
// A later exporter for the same format replaces an earlier one.
func NewRegistry(exporters ...Exporter) *Registry {
	r := &Registry{exporters: make(map[Format]Exporter, len(exporters))}
	for _, e := range exporters {
		if _, dup := r.exporters[e.Format()]; !dup {
			r.order = append(r.order, e.Format())
		}
		r.exporters[e.Format()] = e
	}
	return r
}

// Formats lists the registered formats in registration order.
func (r *Registry) Formats() []Format {
	return append([]Format(nil), r.order...)
}

// Export runs the exporter for format. Failures are wrapped with the format.
func (r *Registry) Export(ctx context.Context, format Format, v model.Variant, rec model.Record) (Artifact, error) {
	e, ok := r.exporters[format]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	start := time.Now()
	art, err := e.Export(ctx, v, rec)
	durationMs := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordExport(v.Slug, string(format), "error", durationMs)
		return Artifact{}, fmt.Errorf("export %s: %w", format, err)
	}
	metrics.RecordExport(v.Slug, string(format), "ok", durationMs)
	metrics.RecordExportBytes(string(format), len(art.Data))
	return art, nil
}

// ParseFormat normalises a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, PDF, XLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}
