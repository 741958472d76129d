package api

import (
	"net/http"

	"github.com/okian/scorecard/internal/domain/model"
)

// VariantsHandler lists the available forms.
type VariantsHandler struct {
	deps Dependencies
}

// NewVariantsHandler creates a new variants handler.
func NewVariantsHandler(deps Dependencies) *VariantsHandler {
	return &VariantsHandler{deps: deps}
}

type variantsResponse struct {
	Variants []model.Variant `json:"variants"`
	Formats  []string        `json:"formats"`
}

// HandleList handles GET /api/variants.
func (h *VariantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp := variantsResponse{Variants: h.deps.Variants(), Formats: []string{}}
	for _, f := range h.deps.Formats() {
		resp.Formats = append(resp.Formats, string(f))
	}
	writeJSON(w, http.StatusOK, resp)
}
