package api

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/okian/scorecard/internal/domain/model"
)

// ExportHandler turns a submitted form into a file download.
type ExportHandler struct {
	deps Dependencies
	errs *errorWriter
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies, errs *errorWriter) *ExportHandler {
	return &ExportHandler{deps: deps, errs: errs}
}

// HandleExport handles POST /forms/{variant}/export?format=csv|pdf|xlsx.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
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

	view, art, err := h.deps.Export(r.Context(), sessionID(r), slug, r.URL.Query().Get("format"), parseForm(r, v))
	setSession(w, r, view.SessionID)
	if err != nil {
		h.errs.write(w, r, err)
		return
	}

	w.Header().Set("Content-Type", art.MIME)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Data)
}
