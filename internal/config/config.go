package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/loykin/stackctl/internal/descriptor"
	"github.com/loykin/stackctl/internal/lifecycle"
	"github.com/loykin/stackctl/internal/logger"
)

// Config is the top-level TOML structure. All sections are optional; the
// zero config describes the reference Milvus deployment.
//
// Example:
//
//	[stack]
//	name = "milvus"
//	endpoint = "localhost:19530"
//	settle_delay = "5s"
//
//	[log]
//	level = "info"
//	color = true
//
//	[history]
//	dsn = "sqlite:///var/lib/stackctl/history.db"
//
//	[server]
//	listen = ":8080"
//	base_path = "/api"
//
//	[metrics]
//	enabled = true
//	listen = ":9090"
type Config struct {
	Stack   StackConfig    `toml:"stack" mapstructure:"stack"`
	Log     logger.Config  `toml:"log" mapstructure:"log"`
	History *HistoryConfig `toml:"history" mapstructure:"history"`
	Server  *ServerConfig  `toml:"server" mapstructure:"server"`
	Metrics *MetricsConfig `toml:"metrics" mapstructure:"metrics"`
}

// StackConfig identifies the compose stack and how to confirm it.
type StackConfig struct {
	Name        string        `toml:"name" mapstructure:"name"`
	Pattern     string        `toml:"pattern" mapstructure:"pattern"`
	Endpoint    string        `toml:"endpoint" mapstructure:"endpoint"`
	Descriptors []string      `toml:"descriptors" mapstructure:"descriptors"`
	SettleDelay time.Duration `toml:"settle_delay" mapstructure:"settle_delay"`
}

// HistoryConfig selects the lifecycle-event sink by DSN.
type HistoryConfig struct {
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

// ServerConfig configures the HTTP API started by the serve command.
type ServerConfig struct {
	Listen   string `toml:"listen" mapstructure:"listen"`
	BasePath string `toml:"base_path" mapstructure:"base_path"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Listen  string `toml:"listen" mapstructure:"listen"`
}

// Default returns the configuration of the reference deployment: a Milvus
// standalone stack reachable on localhost:19530.
func Default() *Config {
	return &Config{
		Stack: StackConfig{
			Name:        "milvus",
			Endpoint:    "localhost:19530",
			Descriptors: descriptor.DefaultNames,
			SettleDelay: lifecycle.DefaultSettleDelay,
		},
		Log: logger.Config{Level: "info", Color: true},
	}
}

// Load reads a TOML config file and merges it over Default. An empty path
// returns Default unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Stack.Name == "" {
		return nil, fmt.Errorf("config %s: stack.name must not be empty", path)
	}
	if cfg.Stack.SettleDelay <= 0 {
		cfg.Stack.SettleDelay = lifecycle.DefaultSettleDelay
	}
	if len(cfg.Stack.Descriptors) == 0 {
		cfg.Stack.Descriptors = descriptor.DefaultNames
	}
	return cfg, nil
}

// Controller translates the stack section into a lifecycle config rooted at
// workingRoot.
func (c *Config) Controller(workingRoot string) lifecycle.Config {
	return lifecycle.Config{
		Stack:           c.Stack.Name,
		Pattern:         c.Stack.Pattern,
		DescriptorNames: c.Stack.Descriptors,
		WorkingRoot:     workingRoot,
		SettleDelay:     c.Stack.SettleDelay,
		Endpoint:        c.Stack.Endpoint,
	}
}
