// Package engine shells out to the container engine CLI (docker and its
// compose plugin). The engine's state is treated as opaque: this package
// only issues commands and returns raw output.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes a CLI command in dir and returns its combined output.
// It exists so lifecycle tests can substitute a fake without a real engine.
type Runner interface {
	CombinedOutput(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) CombinedOutput(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	// ok: fixed binary name, arguments assembled internally
	// #nosec G204
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Docker drives the docker CLI. The zero value is not usable; construct
// with New.
type Docker struct {
	bin    string
	runner Runner
	logger *slog.Logger
}

// Option configures a Docker client.
type Option func(*Docker)

// WithRunner replaces the exec-backed runner, mainly for tests.
func WithRunner(r Runner) Option { return func(d *Docker) { d.runner = r } }

// WithBinary overrides the engine binary name (default "docker").
func WithBinary(bin string) Option { return func(d *Docker) { d.bin = bin } }

// WithLogger sets the structured logger used for command tracing.
func WithLogger(l *slog.Logger) Option { return func(d *Docker) { d.logger = l } }

func New(opts ...Option) *Docker {
	d := &Docker{bin: "docker", runner: execRunner{}, logger: slog.Default()}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Available probes the engine daemon with a lightweight listing query.
// An unreachable daemon is an expected condition, so the result is a plain
// bool and never an error.
func (d *Docker) Available(ctx context.Context) bool {
	out, err := d.runner.CombinedOutput(ctx, "", d.bin, "ps", "-q")
	if err != nil {
		d.logger.Debug("engine availability probe failed",
			"error", err, "output", strings.TrimSpace(string(out)))
		return false
	}
	return true
}

// PS returns the raw tabular output of `docker ps -a`, the sole status
// channel this tool relies on.
func (d *Docker) PS(ctx context.Context) (string, error) {
	out, err := d.runner.CombinedOutput(ctx, "", d.bin, "ps", "-a")
	if err != nil {
		return "", fmt.Errorf("%s ps -a: %w\n%s", d.bin, err, out)
	}
	return string(out), nil
}

// ComposeUp brings the descriptor's service group up detached. The compose
// plugin creates-or-resumes, so the call is idempotent. dir is the working
// directory the compose CLI resolves relative paths against.
func (d *Docker) ComposeUp(ctx context.Context, dir, file string) error {
	out, err := d.runner.CombinedOutput(ctx, dir, d.bin, "compose", "-f", file, "up", "-d")
	if err != nil {
		return fmt.Errorf("%s compose up -d (%s): %w\n%s", d.bin, file, err, out)
	}
	d.logger.Debug("compose up finished", "file", file, "dir", dir)
	return nil
}

// ComposeStop halts the descriptor's service group without removing it.
func (d *Docker) ComposeStop(ctx context.Context, dir, file string) error {
	out, err := d.runner.CombinedOutput(ctx, dir, d.bin, "compose", "-f", file, "stop")
	if err != nil {
		return fmt.Errorf("%s compose stop (%s): %w\n%s", d.bin, file, err, out)
	}
	d.logger.Debug("compose stop finished", "file", file, "dir", dir)
	return nil
}
