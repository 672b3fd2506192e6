package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/loykin/stackctl/internal/descriptor"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "stackctl.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "milvus", cfg.Stack.Name)
	require.Equal(t, "localhost:19530", cfg.Stack.Endpoint)
	require.Equal(t, 5*time.Second, cfg.Stack.SettleDelay)
	require.Equal(t, descriptor.DefaultNames, cfg.Stack.Descriptors)
	require.Nil(t, cfg.History)
	require.Nil(t, cfg.Server)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFullConfig(t *testing.T) {
	p := writeConfig(t, `
[stack]
name = "vector-db"
pattern = "milvus"
endpoint = "127.0.0.1:19530"
descriptors = ["milvus-compose.yml"]
settle_delay = "10s"

[log]
level = "debug"
file = "/tmp/stackctl.log"

[history]
dsn = "sqlite://:memory:"

[server]
listen = ":8080"
base_path = "/api"

[metrics]
enabled = true
listen = ":9090"
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "vector-db", cfg.Stack.Name)
	require.Equal(t, "milvus", cfg.Stack.Pattern)
	require.Equal(t, 10*time.Second, cfg.Stack.SettleDelay)
	require.Equal(t, []string{"milvus-compose.yml"}, cfg.Stack.Descriptors)
	require.Equal(t, "debug", cfg.Log.Level)
	require.NotNil(t, cfg.History)
	require.Equal(t, "sqlite://:memory:", cfg.History.DSN)
	require.NotNil(t, cfg.Server)
	require.Equal(t, ":8080", cfg.Server.Listen)
	require.NotNil(t, cfg.Metrics)
	require.True(t, cfg.Metrics.Enabled)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	p := writeConfig(t, `
[stack]
endpoint = "localhost:9091"
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "milvus", cfg.Stack.Name)
	require.Equal(t, "localhost:9091", cfg.Stack.Endpoint)
	require.Equal(t, 5*time.Second, cfg.Stack.SettleDelay)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	p := writeConfig(t, "[stack\nname=")
	_, err := Load(p)
	require.Error(t, err)
}

func TestControllerTranslation(t *testing.T) {
	cfg := Default()
	lc := cfg.Controller("/srv/milvus")
	require.Equal(t, "milvus", lc.Stack)
	require.Equal(t, "/srv/milvus", lc.WorkingRoot)
	require.Equal(t, 5*time.Second, lc.SettleDelay)
	require.Equal(t, "localhost:19530", lc.Endpoint)
}
