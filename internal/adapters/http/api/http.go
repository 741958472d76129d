// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/scorecard/internal/adapters/export"
	"github.com/okian/scorecard/internal/domain/collector"
	"github.com/okian/scorecard/internal/domain/model"
	"github.com/okian/scorecard/internal/domain/types"
	"github.com/okian/scorecard/pkg/logger"
)

// SessionCookie carries the opaque session id between passes.
const SessionCookie = "scorecard_session"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Render runs one pass of a form for the session.
	Render(ctx context.Context, sessionID, variant string, in collector.Input) (types.View, error)

	// AddEmployee appends a name to the session's list.
	AddEmployee(ctx context.Context, sessionID, variant, name string) (types.View, error)

	// Export assembles the record for in and serializes it.
	Export(ctx context.Context, sessionID, variant, format string, in collector.Input) (types.View, export.Artifact, error)

	Variants() []model.Variant
	Formats() []export.Format
}

// Server wires HTTP routes for the forms and the JSON API.
type Server struct {
	defaultVariant string
	log            logger.Logger

	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	formsHandler     *FormsHandler
	exportHandler    *ExportHandler
	employeesHandler *EmployeesHandler
	recordsHandler   *RecordsHandler
	variantsHandler  *VariantsHandler
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithDefaultVariant sets the form "/" redirects to.
func WithDefaultVariant(slug string) ServerOption {
	return func(s *Server) {
		if slug != "" {
			s.defaultVariant = slug
		}
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		s.log = l
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{defaultVariant: model.ScoreCard}
	for _, opt := range opts {
		opt(s)
	}
	errs := &errorWriter{log: s.log}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.formsHandler = NewFormsHandler(deps, errs)
	s.exportHandler = NewExportHandler(deps, errs)
	s.employeesHandler = NewEmployeesHandler(deps, errs)
	s.recordsHandler = NewRecordsHandler(deps, errs)
	s.variantsHandler = NewVariantsHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /forms/{variant}", MetricsMiddleware(s.formsHandler.HandleForm, "forms"))
	mux.HandleFunc("POST /forms/{variant}", MetricsMiddleware(s.formsHandler.HandleForm, "forms"))
	mux.HandleFunc("POST /forms/{variant}/export", MetricsMiddleware(s.exportHandler.HandleExport, "export"))

	mux.HandleFunc("GET /api/variants", MetricsMiddleware(s.variantsHandler.HandleList, "variants"))
	mux.HandleFunc("POST /api/forms/{variant}/employees", MetricsMiddleware(s.employeesHandler.HandleAdd, "employees"))
	mux.HandleFunc("POST /api/forms/{variant}/record", MetricsMiddleware(s.recordsHandler.HandleRecord, "record"))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/forms/"+s.defaultVariant, http.StatusFound)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// errorWriter maps service errors to JSON error responses and logs the
// unexpected ones.
type errorWriter struct {
	log logger.Logger
}

func (e *errorWriter) write(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= statusInternalError && e.log != nil {
		e.log.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("method", r.Method),
			logger.Error(err),
		)
	}
	writeError(w, status, code, err)
}

// sessionID returns the id carried by the request cookie, or "".
func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// setSession refreshes the session cookie when the service minted a new id.
func setSession(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" || id == sessionID(r) {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

var errMissingVariant = errors.New("missing variant")

func variantParam(r *http.Request) (string, error) {
	v := r.PathValue("variant")
	if v == "" {
		return "", errMissingVariant
	}
	return v, nil
}
