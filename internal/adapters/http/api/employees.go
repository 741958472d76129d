package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/scorecard/internal/domain/types"
)

const maxBodyBytes = 1 << 20

// EmployeesHandler adds names to the session's employee list.
type EmployeesHandler struct {
	deps Dependencies
	errs *errorWriter
}

// NewEmployeesHandler creates a new employees handler.
func NewEmployeesHandler(deps Dependencies, errs *errorWriter) *EmployeesHandler {
	return &EmployeesHandler{deps: deps, errs: errs}
}

// HandleAdd handles POST /api/forms/{variant}/employees.
// An empty name is accepted and reported with added=false.
func (h *EmployeesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	slug, err := variantParam(r)
	if err != nil {
		h.errs.write(w, r, err)
		return
	}

	var req types.EmployeeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.errs.write(w, r, fmt.Errorf("%w: invalid JSON body: %w", ErrBadRequest, err))
		return
	}

	view, err := h.deps.AddEmployee(r.Context(), sessionID(r), slug, req.Name)
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	setSession(w, r, view.SessionID)

	writeJSON(w, http.StatusOK, types.EmployeeResponse{
		Added:         view.Added,
		Notice:        view.Notice,
		EmployeeNames: append([]string{}, view.Record.EmployeeNames...),
	})
}
