package server

import (
	"context"
	"sync"

	"github.com/teemow/intervals-mcp/internal/config"
	"github.com/teemow/intervals-mcp/internal/instrumentation"
	"github.com/teemow/intervals-mcp/internal/intervals"
	"github.com/teemow/intervals-mcp/internal/logging"
	"github.com/teemow/intervals-mcp/internal/strava"
	"github.com/teemow/intervals-mcp/internal/upstream"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	cfg             *config.Config
	httpClient      *upstream.Client
	logger          logging.Logger
	intervalsClient *intervals.Client
	stravaClient    *strava.Client
	metrics         *instrumentation.Metrics
	auditLogger     *instrumentation.AuditLogger
	mu              sync.RWMutex
	shutdown        bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, cfg *config.Config, logger logging.Logger) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	if cfg == nil {
		cfg = config.FromEnv()
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}

	return &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		cfg:        cfg,
		httpClient: upstream.NewClient(nil, logger),
		logger:     logger,
		shutdown:   false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the environment-derived configuration
func (sc *ServerContext) Config() *config.Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.cfg
}

// Logger returns the server logger
func (sc *ServerContext) Logger() logging.Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// IntervalsClient returns the Intervals.icu client.
// Creates and caches the client if it doesn't exist yet.
func (sc *ServerContext) IntervalsClient() *intervals.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.intervalsClient == nil {
		sc.intervalsClient = intervals.New(sc.cfg, sc.httpClient)
	}
	return sc.intervalsClient
}

// SetIntervalsClient sets the Intervals.icu client. Tests use this to inject
// clients pointed at fake servers.
func (sc *ServerContext) SetIntervalsClient(client *intervals.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.intervalsClient = client
}

// StravaClient returns the Strava client.
// Creates and caches the client if it doesn't exist yet.
func (sc *ServerContext) StravaClient() *strava.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.stravaClient == nil {
		opts := []strava.Option{strava.WithLogger(sc.logger)}
		if sc.metrics != nil {
			opts = append(opts, strava.WithMetrics(sc.metrics))
		}
		sc.stravaClient = strava.New(sc.cfg, sc.httpClient, opts...)
	}
	return sc.stravaClient
}

// SetStravaClient sets the Strava client. Tests use this to inject clients
// pointed at fake servers.
func (sc *ServerContext) SetStravaClient(client *strava.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.stravaClient = client
}

// Metrics returns the metrics recorder, or nil if instrumentation is disabled
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// AuditLogger returns the audit logger, or nil if not configured
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger
func (sc *ServerContext) SetAuditLogger(auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
