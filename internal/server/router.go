package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loykin/stackctl/internal/descriptor"
	"github.com/loykin/stackctl/internal/lifecycle"
	"github.com/loykin/stackctl/internal/status"
)

// Controller is the lifecycle surface the HTTP API exposes. It is an
// interface so handlers can be tested without a container engine.
type Controller interface {
	Start(ctx context.Context) (lifecycle.Result, error)
	Stop(ctx context.Context) (lifecycle.Result, error)
	Status(ctx context.Context) ([]status.ServiceStatus, error)
}

// Router provides embeddable HTTP handlers for driving the stack.
// Endpoints:
//
//	POST {basePath}/start
//	POST {basePath}/stop
//	GET  {basePath}/status
//
// basePath may be empty or start with '/'; no trailing slash.
type Router struct {
	ctl      Controller
	basePath string
}

// NewRouter constructs a new Router with configurable basePath.
// Example basePath: "/api" results in /api/start, /api/stop, /api/status.
func NewRouter(ctl Controller, basePath string) *Router {
	return &Router{ctl: ctl, basePath: sanitizeBase(basePath)}
}

// Handler returns an http.Handler powered by gin that can be mounted in any server/mux.
func (r *Router) Handler() http.Handler {
	g := gin.New()
	g.Use(gin.Recovery())
	group := g.Group(r.basePath)
	group.POST("/start", r.handleStart)
	group.POST("/stop", r.handleStop)
	group.GET("/status", r.handleStatus)
	return g
}

// NewServer starts a standalone HTTP server on addr using this router.
// The returned server can be shut down with Close.
func NewServer(addr, basePath string, ctl Controller) (*http.Server, error) {
	r := NewRouter(ctl, basePath)
	server := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second, // start holds the settle delay
		IdleTimeout:       60 * time.Second,
	}
	go func() { _ = server.ListenAndServe() }()
	return server, nil
}

// --- Handlers ---

type errorResp struct {
	Error string `json:"error"`
}

func (r *Router) handleStart(c *gin.Context) {
	res, err := r.ctl.Start(c.Request.Context())
	if err != nil {
		writeJSON(c, statusFor(err), errorResp{Error: err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, res)
}

func (r *Router) handleStop(c *gin.Context) {
	res, err := r.ctl.Stop(c.Request.Context())
	if err != nil {
		writeJSON(c, statusFor(err), errorResp{Error: err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, res)
}

func (r *Router) handleStatus(c *gin.Context) {
	list, err := r.ctl.Status(c.Request.Context())
	if err != nil {
		writeJSON(c, statusFor(err), errorResp{Error: err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, list)
}

// statusFor maps the lifecycle error taxonomy onto HTTP codes: an
// unreachable engine is a dependency failure, a missing descriptor is a
// deployment-side 404, anything else is internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, lifecycle.ErrEngineUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, descriptor.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
