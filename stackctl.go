package stackctl

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cfg "github.com/loykin/stackctl/internal/config"
	"github.com/loykin/stackctl/internal/engine"
	"github.com/loykin/stackctl/internal/history"
	"github.com/loykin/stackctl/internal/history/factory"
	"github.com/loykin/stackctl/internal/lifecycle"
	"github.com/loykin/stackctl/internal/logger"
	"github.com/loykin/stackctl/internal/metrics"
	iapi "github.com/loykin/stackctl/internal/server"
	"github.com/loykin/stackctl/internal/status"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type ServiceStatus = status.ServiceStatus

type State = status.State

const (
	StateNotFound = status.StateNotFound
	StateStopped  = status.StateStopped
	StateRunning  = status.StateRunning
	StateUnknown  = status.StateUnknown
)

type Controller = lifecycle.Controller

type ControllerConfig = lifecycle.Config

type Result = lifecycle.Result

type Outcome = lifecycle.Outcome

const (
	OutcomeConfirmed   = lifecycle.OutcomeConfirmed
	OutcomeUnconfirmed = lifecycle.OutcomeUnconfirmed
)

var ErrEngineUnavailable = lifecycle.ErrEngineUnavailable

type Event = history.Event

type Sink = history.Sink

type Config = cfg.Config

type LogConfig = logger.Config

// New builds a lifecycle controller backed by the local docker CLI.
func New(c ControllerConfig, opts ...lifecycle.Option) *Controller {
	return lifecycle.New(c, engine.New(), opts...)
}

// NewWithEngine builds a controller around a custom engine, mainly for
// embedding and tests.
func NewWithEngine(c ControllerConfig, eng lifecycle.Engine, opts ...lifecycle.Option) *Controller {
	return lifecycle.New(c, eng, opts...)
}

func LoadConfig(path string) (*Config, error) {
	return cfg.Load(path)
}

// NewLogger builds the tool's structured logger from a log config.
func NewLogger(c LogConfig) *slog.Logger { return logger.New(c) }

// NewHistorySink creates a lifecycle-event sink from a DSN
// (sqlite, postgres or clickhouse).
func NewHistorySink(dsn string) (Sink, error) {
	return factory.NewSinkFromDSN(dsn)
}

// NewHTTPServer starts an HTTP server exposing the lifecycle API using the given controller.
func NewHTTPServer(addr, basePath string, ctl iapi.Controller) (*http.Server, error) {
	return iapi.NewServer(addr, basePath, ctl)
}

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }

// ServeMetrics starts an HTTP server on addr exposing /metrics using the default registry.
// It returns any immediate listen error; otherwise it runs the server in the caller goroutine.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}
