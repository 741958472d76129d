package pdfexport

import "errors"

// Sentinel kinds for document export errors.
var (
	ErrEncoding = errors.New("text not representable in latin-1")
	ErrRender   = errors.New("pdf render failed")
)
