package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/loykin/stackctl"
)

type command struct{}

// Start brings the stack up and reports the poll outcome. An unconfirmed
// poll is a warning, not a failure.
func (command) Start(configPath string) error {
	ctl, cfg, closer, err := buildController(configPath)
	if err != nil {
		return err
	}
	defer closer()

	res, err := ctl.Start(context.Background())
	if err != nil {
		return err
	}

	switch res.Outcome {
	case stackctl.OutcomeConfirmed:
		if res.Endpoint != "" {
			color.Green("✓ %s is running at %s", cfg.Stack.Name, res.Endpoint)
		} else {
			color.Green("✓ %s is running", cfg.Stack.Name)
		}
	default:
		color.Yellow("! %s may not have started correctly; check the container logs", cfg.Stack.Name)
	}
	printServices(res.Services)
	return nil
}

// Stop halts the stack. Only an unreachable engine or a missing descriptor
// fails the command; an unconfirmed stop is reported and exits zero.
func (command) Stop(configPath string) error {
	ctl, cfg, closer, err := buildController(configPath)
	if err != nil {
		return err
	}
	defer closer()

	res, err := ctl.Stop(context.Background())
	if err != nil {
		return err
	}

	switch res.Outcome {
	case stackctl.OutcomeConfirmed:
		color.Green("✓ %s stopped", cfg.Stack.Name)
	default:
		color.Yellow("! %s containers still report as running; check the container logs", cfg.Stack.Name)
	}
	printServices(res.Services)
	return nil
}

// Status prints the current container states as JSON.
func (command) Status(configPath string) error {
	ctl, _, closer, err := buildController(configPath)
	if err != nil {
		return err
	}
	defer closer()

	list, err := ctl.Status(context.Background())
	if err != nil {
		return err
	}
	printJSON(list)
	return nil
}

// Serve runs the HTTP lifecycle API until SIGINT or SIGTERM.
func (command) Serve(configPath string, f ServeFlags) error {
	ctl, cfg, closer, err := buildController(configPath)
	if err != nil {
		return err
	}
	defer closer()

	listen := f.Listen
	if listen == "" && cfg.Server != nil {
		listen = cfg.Server.Listen
	}
	if listen == "" {
		listen = ":8080"
	}
	basePath := f.BasePath
	if basePath == "" && cfg.Server != nil {
		basePath = cfg.Server.BasePath
	}

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		if err := stackctl.RegisterMetricsDefault(); err != nil {
			fmt.Printf("Warning: failed to register metrics: %v\n", err)
		}
		if cfg.Metrics.Listen != "" {
			go func() {
				if err := stackctl.ServeMetrics(cfg.Metrics.Listen); err != nil {
					fmt.Printf("Metrics server error: %v\n", err)
				}
			}()
		}
	}

	server, err := stackctl.NewHTTPServer(listen, basePath, ctl)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	fmt.Printf("Starting stackctl server on %s%s\n", listen, basePath)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("Shutting down...")
	return server.Close()
}
