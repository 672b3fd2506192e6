package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/loykin/stackctl"
	"github.com/loykin/stackctl/internal/engine"
	"github.com/loykin/stackctl/internal/lifecycle"
)

// buildController loads the config, installs the logger and returns a
// controller rooted at the current working directory. The closer releases
// the history sink, if any.
func buildController(configPath string) (*stackctl.Controller, *stackctl.Config, func(), error) {
	cfg, err := stackctl.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	log := stackctl.NewLogger(cfg.Log)
	slog.SetDefault(log)

	opts := []lifecycle.Option{lifecycle.WithLogger(log)}
	closer := func() {}
	if cfg.History != nil && cfg.History.DSN != "" {
		sink, err := stackctl.NewHistorySink(cfg.History.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open history sink: %w", err)
		}
		opts = append(opts, lifecycle.WithSinks(sink))
		if c, ok := sink.(io.Closer); ok {
			closer = func() { _ = c.Close() }
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolve working directory: %w", err)
	}

	eng := engine.New(engine.WithLogger(log))
	ctl := stackctl.NewWithEngine(cfg.Controller(wd), eng, opts...)
	return ctl, cfg, closer, nil
}

func printServices(list []stackctl.ServiceStatus) {
	for _, s := range list {
		line := fmt.Sprintf("  %-32s %s", s.Name, s.State)
		if len(s.Ports) > 0 {
			line += "  " + strings.Join(s.Ports, ", ")
		}
		fmt.Println(line)
	}
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(b))
}
