package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DRAUGHTS_ADDR", "DRAUGHTS_METRICS", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "LOG_CALLER"} {
		t.Setenv(k, "")
	}
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "draughts.yaml", `
addr: ":9090"
black_name: alice
white_name: bob
metrics: false
log:
  level: debug
  format: json
  caller: true
websocket:
  allowed_origins: ["http://localhost:3000"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "alice", cfg.BlackName)
	assert.Equal(t, "bob", cfg.WhiteName)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Log.Caller)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.WebSocket.AllowedOrigins)
	// untouched keys keep their defaults
	assert.Equal(t, 1024, cfg.WebSocket.ReadBufferSize)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "draughts.toml", `
addr = ":7070"
black_name = "carol"

[log]
level = "warn"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "carol", cfg.BlackName)
	assert.Equal(t, "white", cfg.WhiteName)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "draughts.yml", "addr: \":9090\"\n")
	t.Setenv("DRAUGHTS_ADDR", ":6060")
	t.Setenv("DRAUGHTS_WHITE_NAME", "dave")
	t.Setenv("DRAUGHTS_METRICS", "false")
	t.Setenv("DRAUGHTS_ALLOWED_ORIGINS", "a.example, b.example,")
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_CALLER", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Addr)
	assert.Equal(t, "dave", cfg.WhiteName)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, []string{"a.example", "b.example"}, cfg.WebSocket.AllowedOrigins)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.True(t, cfg.Log.Caller)
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"same names":     "black_name: x\nwhite_name: x\n",
		"bad log format": "log:\n  format: xml\n",
		"empty addr":     "addr: \"\"\n",
		"negative buf":   "websocket:\n  read_buffer_size: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.yaml", body))
			assert.ErrorContains(t, err, "invalid config")
		})
	}

	_, err := Load(writeFile(t, "c.json", "{}"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = Load(writeFile(t, "c.yaml", "addr: [\n"))
	assert.ErrorContains(t, err, "parse c.yaml")
}
