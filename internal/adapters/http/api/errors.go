package api

import (
	"errors"

	"github.com/okian/scorecard/internal/adapters/export"
	"github.com/okian/scorecard/internal/adapters/export/pdfexport"
	"github.com/okian/scorecard/internal/adapters/export/xlsxexport"
	"github.com/okian/scorecard/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// classify maps an error to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrUnknownVariant), errors.Is(err, errMissingVariant):
		return statusNotFound, "unknown_variant"
	case errors.Is(err, export.ErrUnknownFormat):
		return statusBadRequest, "unknown_format"
	case errors.Is(err, pdfexport.ErrEncoding):
		return statusUnprocessable, "encoding_error"
	case errors.Is(err, xlsxexport.ErrCellTooLong):
		return statusUnprocessable, "cell_too_long"
	case errors.Is(err, ErrBadRequest):
		return statusBadRequest, "bad_request"
	default:
		return statusInternalError, "internal_error"
	}
}
