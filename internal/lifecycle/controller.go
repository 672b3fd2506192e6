// Package lifecycle orchestrates start/stop of a compose-managed service
// group through the container engine CLI. Each invocation is a straight-line
// sequence: availability probe, descriptor lookup, compose call, one status
// poll. There is no retry loop; an empty poll after the settle delay is a
// warning, not an error.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/loykin/stackctl/internal/descriptor"
	"github.com/loykin/stackctl/internal/history"
	"github.com/loykin/stackctl/internal/metrics"
	"github.com/loykin/stackctl/internal/status"
)

// DefaultSettleDelay is the fixed pause between issuing a start command and
// the single status poll that follows.
const DefaultSettleDelay = 5 * time.Second

// ErrEngineUnavailable reports that the container engine daemon did not
// answer the availability probe. It is fatal to the invocation but expected
// and recoverable from the user's point of view.
var ErrEngineUnavailable = errors.New("container engine is not reachable")

// Engine is the subset of the engine CLI the controller depends on.
type Engine interface {
	Available(ctx context.Context) bool
	PS(ctx context.Context) (string, error)
	ComposeUp(ctx context.Context, dir, file string) error
	ComposeStop(ctx context.Context, dir, file string) error
}

// Outcome classifies the post-operation status poll.
type Outcome string

const (
	// OutcomeConfirmed means the poll found a matching entry in the
	// expected state.
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeUnconfirmed means the poll did not confirm the expected state.
	// The underlying operation may simply be slow; callers report this as a
	// warning and advise manual log inspection.
	OutcomeUnconfirmed Outcome = "unconfirmed"
)

// Result is the terminal report of a start or stop invocation.
type Result struct {
	Outcome    Outcome                `json:"outcome"`
	Services   []status.ServiceStatus `json:"services"`
	Endpoint   string                 `json:"endpoint,omitempty"`
	Descriptor string                 `json:"descriptor"`
}

// Config carries the stack identity and lookup policy. The working root is
// threaded through explicitly; the controller never changes the process
// working directory.
type Config struct {
	Stack           string        // stack name used in reports, metrics and history
	Pattern         string        // substring to match container names against; defaults to Stack
	DescriptorNames []string      // candidate compose file names; defaults to descriptor.DefaultNames
	WorkingRoot     string        // descriptor search root; defaults to "."
	SettleDelay     time.Duration // pause before the post-start poll; defaults to DefaultSettleDelay
	Endpoint        string        // address reported on a confirmed start, e.g. "localhost:19530"
}

// Controller is the lifecycle controller. Construct with New.
type Controller struct {
	cfg    Config
	engine Engine
	clock  Clock
	logger *slog.Logger
	sinks  []history.Sink
}

// Option configures a Controller.
type Option func(*Controller)

func WithClock(c Clock) Option               { return func(ctl *Controller) { ctl.clock = c } }
func WithLogger(l *slog.Logger) Option       { return func(ctl *Controller) { ctl.logger = l } }
func WithSinks(s ...history.Sink) Option     { return func(ctl *Controller) { ctl.sinks = append(ctl.sinks, s...) } }

// New builds a Controller around the given engine. Zero config fields fall
// back to defaults.
func New(cfg Config, eng Engine, opts ...Option) *Controller {
	if cfg.Stack == "" {
		cfg.Stack = "milvus"
	}
	if cfg.Pattern == "" {
		cfg.Pattern = cfg.Stack
	}
	if cfg.WorkingRoot == "" {
		cfg.WorkingRoot = "."
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	ctl := &Controller{
		cfg:    cfg,
		engine: eng,
		clock:  realClock{},
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(ctl)
	}
	return ctl
}

// Start brings the stack up: availability probe, descriptor lookup, compose
// up, settle delay, one status poll. A confirmed Running match yields
// OutcomeConfirmed with the configured endpoint; an empty or non-running
// poll yields OutcomeUnconfirmed with a nil error.
func (c *Controller) Start(ctx context.Context) (Result, error) {
	if !c.engine.Available(ctx) {
		metrics.IncEngineUnavailable()
		return Result{}, ErrEngineUnavailable
	}
	d, err := descriptor.Locate(c.cfg.WorkingRoot, c.cfg.DescriptorNames)
	if err != nil {
		return Result{}, err
	}
	c.logger.Info("starting stack", "stack", c.cfg.Stack, "descriptor", d.Path)
	if err := c.engine.ComposeUp(ctx, d.Dir, d.Name); err != nil {
		return Result{}, err
	}

	c.clock.Sleep(c.cfg.SettleDelay)

	res := Result{Descriptor: d.Path}
	res.Services = c.poll(ctx)
	if status.AnyRunning(res.Services) {
		res.Outcome = OutcomeConfirmed
		res.Endpoint = c.cfg.Endpoint
	} else {
		res.Outcome = OutcomeUnconfirmed
		if len(res.Services) == 0 {
			res.Services = []status.ServiceStatus{{Name: c.cfg.Pattern, State: status.StateNotFound}}
		}
	}

	c.record(ctx, history.EventStart, res)
	metrics.IncStart(c.cfg.Stack, string(res.Outcome))
	return res, nil
}

// Stop halts the stack. The two fatal preconditions (engine reachable,
// descriptor present) match Start; past those the invocation always
// succeeds, and the poll result is informational only.
func (c *Controller) Stop(ctx context.Context) (Result, error) {
	if !c.engine.Available(ctx) {
		metrics.IncEngineUnavailable()
		return Result{}, ErrEngineUnavailable
	}
	d, err := descriptor.Locate(c.cfg.WorkingRoot, c.cfg.DescriptorNames)
	if err != nil {
		return Result{}, err
	}
	c.logger.Info("stopping stack", "stack", c.cfg.Stack, "descriptor", d.Path)
	if err := c.engine.ComposeStop(ctx, d.Dir, d.Name); err != nil {
		// Stop does not gate on the compose result; report and continue.
		c.logger.Warn("compose stop reported an error", "error", err)
	}

	res := Result{Descriptor: d.Path}
	res.Services = c.poll(ctx)
	if status.AnyRunning(res.Services) {
		res.Outcome = OutcomeUnconfirmed
	} else {
		res.Outcome = OutcomeConfirmed
	}

	c.record(ctx, history.EventStop, res)
	metrics.IncStop(c.cfg.Stack, string(res.Outcome))
	return res, nil
}

// Status returns the current view of the stack's containers. When no entry
// matches the pattern a single NotFound placeholder is returned so callers
// always see the stack name.
func (c *Controller) Status(ctx context.Context) ([]status.ServiceStatus, error) {
	if !c.engine.Available(ctx) {
		metrics.IncEngineUnavailable()
		return nil, ErrEngineUnavailable
	}
	raw, err := c.engine.PS(ctx)
	metrics.IncStatusQuery(err == nil)
	if err != nil {
		return nil, err
	}
	matched := status.Filter(status.Parse(raw), c.cfg.Pattern)
	if len(matched) == 0 {
		matched = []status.ServiceStatus{{Name: c.cfg.Pattern, State: status.StateNotFound}}
	}
	return matched, nil
}

// poll performs the single post-operation status query. Query failures are
// downgraded to an empty result: by then the compose operation has already
// been issued, so the flow ends in the warning path instead of failing.
func (c *Controller) poll(ctx context.Context) []status.ServiceStatus {
	raw, err := c.engine.PS(ctx)
	metrics.IncStatusQuery(err == nil)
	if err != nil {
		c.logger.Warn("status poll failed", "error", err)
		return nil
	}
	return status.Filter(status.Parse(raw), c.cfg.Pattern)
}

func (c *Controller) record(ctx context.Context, typ history.EventType, res Result) {
	if len(c.sinks) == 0 {
		return
	}
	e := history.Event{
		Type:       typ,
		OccurredAt: time.Now().UTC(),
		Stack:      c.cfg.Stack,
		Outcome:    string(res.Outcome),
		Detail:     summarize(res.Services),
	}
	for _, s := range c.sinks {
		if err := s.Send(ctx, e); err != nil {
			c.logger.Warn("history sink failed", "type", fmt.Sprintf("%T", s), "error", err)
		}
	}
}

func summarize(list []status.ServiceStatus) string {
	parts := make([]string, 0, len(list))
	for _, s := range list {
		parts = append(parts, s.Name+"="+string(s.State))
	}
	return strings.Join(parts, ",")
}
