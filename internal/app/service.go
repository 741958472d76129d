// Package service wires the form pipeline (collect, assemble, export) to
// session state and implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/scorecard/internal/adapters/export"
	"github.com/okian/scorecard/internal/adapters/export/csvexport"
	"github.com/okian/scorecard/internal/adapters/export/pdfexport"
	"github.com/okian/scorecard/internal/adapters/export/xlsxexport"
	"github.com/okian/scorecard/internal/adapters/session"
	"github.com/okian/scorecard/internal/domain/assembler"
	"github.com/okian/scorecard/internal/domain/collector"
	"github.com/okian/scorecard/internal/domain/model"
	"github.com/okian/scorecard/internal/domain/types"
	"github.com/okian/scorecard/pkg/logger"
	"github.com/okian/scorecard/pkg/metrics"
)

// Service implements the API dependencies for the feedback forms.
type Service struct {
	mu sync.RWMutex

	sessions session.Store
	exports  *export.Registry

	// Configuration
	sessionTTL     time.Duration
	maxSessions    int
	sweepInterval  time.Duration
	pdfCompression bool
	now            func() time.Time

	// State
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionTTL sets how long an idle session keeps its names.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithMaxSessions bounds the number of live sessions.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSweepInterval sets how often expired sessions are dropped.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// WithPDFCompression compresses PDF content streams.
func WithPDFCompression(enabled bool) Option {
	return func(s *Service) {
		s.pdfCompression = enabled
	}
}

// WithClock overrides the time source used for default dates and session
// expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service. The session store and exporters are ready
// immediately; Start only launches the background sweeper.
func New(opts ...Option) *Service {
	s := &Service{
		sessionTTL:    24 * time.Hour,
		maxSessions:   10_000,
		sweepInterval: time.Minute,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sessions = session.NewInMemoryStore(
		session.WithTTL(s.sessionTTL),
		session.WithMaxSessions(s.maxSessions),
		session.WithClock(s.now),
	)
	s.exports = export.NewRegistry(
		csvexport.New(),
		pdfexport.New(pdfexport.WithCompression(s.pdfCompression)),
		xlsxexport.New(),
	)
	return s
}

func (s *Service) log() logger.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.Get()
}

// Start launches the session sweeper. Calling Start on a running service
// is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.sweepLoop(ctx, s.stopCh, s.doneCh)

	s.started = true
	s.log().Info(ctx, "scorecard service started",
		logger.Duration("sessionTTL", s.sessionTTL),
		logger.Int("maxSessions", s.maxSessions),
		logger.Duration("sweepInterval", s.sweepInterval),
		logger.Bool("pdfCompression", s.pdfCompression),
	)
	return nil
}

// Stop halts the sweeper and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	close(s.stopCh)
	<-s.doneCh

	s.started = false
	s.log().Info(context.Background(), "scorecard service stopped")
}

func (s *Service) sweepLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(ctx); n > 0 {
				s.log().Debug(ctx, "expired sessions removed", logger.Int("count", n))
			}
		}
	}
}

// Render runs one pass of the form: resolve the session, collect the
// submitted values, perform the add action if requested and assemble the
// Record from the resulting state.
func (s *Service) Render(ctx context.Context, sessionID, slug string, in collector.Input) (types.View, error) {
	v, err := model.Lookup(slug)
	if err != nil {
		return types.View{}, err
	}

	sess, created := s.sessions.GetOrCreate(ctx, sessionID)
	if created {
		s.log().Debug(ctx, "session created", logger.String("session", sess.ID()))
	}

	values, notice := collector.Collect(v, sess, in, s.now())
	rec := assembler.Assemble(v, values, sess.Names())

	metrics.RecordFormRender(v.Slug)
	if notice != "" {
		metrics.RecordEmployeeAdded(v.Slug)
		s.log().Info(ctx, "employee added",
			logger.String("variant", v.Slug),
			logger.String("session", sess.ID()),
			logger.Int("names", len(rec.EmployeeNames)),
		)
	}

	return types.View{
		SessionID: sess.ID(),
		Variant:   v,
		Values:    values,
		Record:    rec,
		Notice:    notice,
		Added:     notice != "",
	}, nil
}

// AddEmployee appends name to the session's list. Empty names are ignored
// and reported with Added false.
func (s *Service) AddEmployee(ctx context.Context, sessionID, slug, name string) (types.View, error) {
	return s.Render(ctx, sessionID, slug, collector.Input{
		NewEmployeeName: name,
		AddEmployee:     true,
	})
}

// Export assembles the Record for in and serializes it in the requested
// format. The add action is never performed as part of an export.
func (s *Service) Export(ctx context.Context, sessionID, slug, format string, in collector.Input) (types.View, export.Artifact, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return types.View{}, export.Artifact{}, err
	}

	in.AddEmployee = false
	view, err := s.Render(ctx, sessionID, slug, in)
	if err != nil {
		return types.View{}, export.Artifact{}, err
	}

	art, err := s.exports.Export(ctx, f, view.Variant, view.Record)
	if err != nil {
		s.log().Warn(ctx, "export failed",
			logger.String("variant", view.Variant.Slug),
			logger.String("format", string(f)),
			logger.Error(err),
		)
		return view, export.Artifact{}, fmt.Errorf("export %s record: %w", view.Variant.Slug, err)
	}

	s.log().Info(ctx, "export produced",
		logger.String("variant", view.Variant.Slug),
		logger.String("format", string(f)),
		logger.String("file", art.FileName),
		logger.Int("bytes", len(art.Data)),
	)
	return view, art, nil
}

// Variants lists the available forms.
func (s *Service) Variants() []model.Variant {
	return model.All()
}

// Formats lists the available export formats.
func (s *Service) Formats() []export.Format {
	return s.exports.Formats()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := s.sessions.Len(context.Background())
	metrics.UpdateActiveSessions(active)

	formats := make([]string, 0, 3)
	for _, f := range s.exports.Formats() {
		formats = append(formats, string(f))
	}

	return map[string]interface{}{
		"started":           s.started,
		"activeSessions":    active,
		"maxSessions":       s.maxSessions,
		"sessionTTLSeconds": int(s.sessionTTL / time.Second),
		"variants":          len(model.All()),
		"formats":           formats,
	}
}
