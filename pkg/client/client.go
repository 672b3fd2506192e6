// Package client is a small HTTP client for the stackctl serve API. It lets
// other tools drive a remotely managed stack without shelling out to the
// stackctl binary.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/loykin/stackctl"
)

// Client talks to a running stackctl serve instance.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

// DefaultConfig returns the configuration for a local serve instance.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8080",
		Timeout: 30 * time.Second,
	}
}

// New creates a stackctl API client.
func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8080"
	}
	if config.Timeout == 0 {
		// start holds the settle delay server-side, so allow for it
		config.Timeout = 30 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Client{
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: config.Timeout},
		logger:  config.Logger,
	}
}

// IsReachable reports whether the server answers the status endpoint at all.
// Any HTTP response counts; only transport failures return false.
func (c *Client) IsReachable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("server not reachable", "url", c.baseURL, "error", err)
		return false
	}
	_ = resp.Body.Close()
	return true
}

// Start asks the server to start the stack.
func (c *Client) Start(ctx context.Context) (stackctl.Result, error) {
	var res stackctl.Result
	err := c.do(ctx, http.MethodPost, "/start", &res)
	return res, err
}

// Stop asks the server to stop the stack.
func (c *Client) Stop(ctx context.Context) (stackctl.Result, error) {
	var res stackctl.Result
	err := c.do(ctx, http.MethodPost, "/stop", &res)
	return res, err
}

// Status fetches the current container states.
func (c *Client) Status(ctx context.Context) ([]stackctl.ServiceStatus, error) {
	var list []stackctl.ServiceStatus
	err := c.do(ctx, http.MethodGet, "/status", &list)
	return list, err
}

type errorResp struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(nil))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResp
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return fmt.Errorf("API error: %s", e.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
