package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	lifecycleStarts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stackctl",
			Subsystem: "lifecycle",
			Name:      "starts_total",
			Help:      "Number of stack start invocations by poll outcome.",
		}, []string{"stack", "outcome"},
	)
	lifecycleStops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stackctl",
			Subsystem: "lifecycle",
			Name:      "stops_total",
			Help:      "Number of stack stop invocations by poll outcome.",
		}, []string{"stack", "outcome"},
	)
	engineUnavailable = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stackctl",
			Subsystem: "engine",
			Name:      "unavailable_total",
			Help:      "Number of invocations aborted because the container engine was unreachable.",
		},
	)
	statusQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stackctl",
			Subsystem: "engine",
			Name:      "status_queries_total",
			Help:      "Number of raw status listings requested from the engine.",
		}, []string{"result"},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{lifecycleStarts, lifecycleStops, engineUnavailable, statusQueries}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			// If already registered, ignore (allows double Register with default registry)
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler that serves Prometheus metrics for the DefaultGatherer.
// The caller is responsible for starting an HTTP server and wiring the route.
func Handler() http.Handler { return promhttp.Handler() }

// Below are lightweight helpers used by internal packages to record metrics.
// They no-op if Register hasn't been called.

func IncStart(stack, outcome string) {
	if regOK.Load() {
		lifecycleStarts.WithLabelValues(stack, outcome).Inc()
	}
}

func IncStop(stack, outcome string) {
	if regOK.Load() {
		lifecycleStops.WithLabelValues(stack, outcome).Inc()
	}
}

func IncEngineUnavailable() {
	if regOK.Load() {
		engineUnavailable.Inc()
	}
}

func IncStatusQuery(ok bool) {
	if regOK.Load() {
		result := "ok"
		if !ok {
			result = "error"
		}
		statusQueries.WithLabelValues(result).Inc()
	}
}
