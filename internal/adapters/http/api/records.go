package api

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/okian/scorecard/internal/domain/collector"
	"github.com/okian/scorecard/internal/domain/model"
	"github.com/okian/scorecard/internal/domain/types"
)

// RecordsHandler returns the assembled Record as JSON.
type RecordsHandler struct {
	deps Dependencies
	errs *errorWriter
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies, errs *errorWriter) *RecordsHandler {
	return &RecordsHandler{deps: deps, errs: errs}
}

// HandleRecord handles POST /api/forms/{variant}/record. The body is either
// a JSON FormValues document or a regular form submission.
func (h *RecordsHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
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

	in, err := decodeValues(w, r, v)
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	in.AddEmployee = false

	view, err := h.deps.Render(r.Context(), sessionID(r), slug, in)
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	setSession(w, r, view.SessionID)
	writeJSON(w, http.StatusOK, types.FromRecord(view.Record))
}

func decodeValues(w http.ResponseWriter, r *http.Request, v model.Variant) (collector.Input, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		var fv types.FormValues
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&fv); err != nil {
			return collector.Input{}, fmt.Errorf("%w: invalid JSON body: %w", ErrBadRequest, err)
		}
		return fv.Input(), nil
	}
	if err := r.ParseForm(); err != nil {
		return collector.Input{}, errBadForm(err)
	}
	return parseForm(r, v), nil
}

func errBadForm(err error) error {
	return fmt.Errorf("%w: invalid form: %w", ErrBadRequest, err)
}
