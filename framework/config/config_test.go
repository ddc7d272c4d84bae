package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/config"
)

// ── helpers ──────────────────────────────────────────────────────────────────

var configKeys = []string{
	"APP_NAME", "APP_ENV", "APP_DEBUG",
	"LOG_LEVEL", "LOG_FORMAT",
	"TELEMETRY_TRACING", "TELEMETRY_METRICS",
	"INSPECT_ENABLED", "INSPECT_ADDR",
}

// unsetEnv clears key for the duration of the test. Values written later
// by godotenv are removed again on cleanup.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func missingEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, configKeys...)
	cfg := config.Load(missingEnv(t))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"App.Name", cfg.App.Name, "GoBeans"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Debug", cfg.App.Debug, false},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Log.Format", cfg.Log.Format, "text"},
		{"Telemetry.Tracing", cfg.Telemetry.Tracing, false},
		{"Telemetry.Metrics", cfg.Telemetry.Metrics, false},
		{"Inspect.Enabled", cfg.Inspect.Enabled, false},
		{"Inspect.Addr", cfg.Inspect.Addr, ":8000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	unsetEnv(t, configKeys...)
	t.Setenv("APP_NAME", "Orders")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TELEMETRY_TRACING", "true")
	t.Setenv("INSPECT_ADDR", ":9000")

	cfg := config.Load(missingEnv(t))

	assert.Equal(t, "Orders", cfg.App.Name)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Telemetry.Tracing)
	assert.False(t, cfg.Telemetry.Metrics)
	assert.Equal(t, ":9000", cfg.Inspect.Addr)
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t, configKeys...)
	path := writeFile(t, "app.env", "APP_NAME=FromFile\nLOG_LEVEL=debug\nINSPECT_ENABLED=true\n")

	cfg := config.Load(path)

	assert.Equal(t, "FromFile", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Inspect.Enabled)
}

func TestLoad_ProcessEnvBeatsEnvFile(t *testing.T) {
	unsetEnv(t, configKeys...)
	t.Setenv("APP_NAME", "FromProcess")
	path := writeFile(t, "app.env", "APP_NAME=FromFile\n")

	cfg := config.Load(path)
	assert.Equal(t, "FromProcess", cfg.App.Name)
}

func TestLoad_AppDebug(t *testing.T) {
	unsetEnv(t, configKeys...)

	t.Setenv("APP_DEBUG", "true")
	assert.True(t, config.Load(missingEnv(t)).App.Debug)

	t.Setenv("APP_DEBUG", "false")
	assert.False(t, config.Load(missingEnv(t)).App.Debug)

	t.Setenv("APP_DEBUG", "notabool")
	assert.False(t, config.Load(missingEnv(t)).App.Debug)
}

// ── LoadFile ─────────────────────────────────────────────────────────────────

func TestLoadFile_YAML(t *testing.T) {
	unsetEnv(t, configKeys...)
	path := writeFile(t, "config.yaml", `
app:
  name: Inventory
  env: testing
log:
  level: warn
  format: json
telemetry:
  metrics: true
inspect:
  enabled: true
  addr: ":7070"
`)

	cfg, err := config.LoadFile(path, missingEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "Inventory", cfg.App.Name)
	assert.Equal(t, "testing", cfg.App.Env)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Telemetry.Metrics)
	assert.False(t, cfg.Telemetry.Tracing)
	assert.True(t, cfg.Inspect.Enabled)
	assert.Equal(t, ":7070", cfg.Inspect.Addr)
}

func TestLoadFile_KeepsDefaultsForMissingKeys(t *testing.T) {
	unsetEnv(t, configKeys...)
	path := writeFile(t, "config.yaml", "app:\n  name: Partial\n")

	cfg, err := config.LoadFile(path, missingEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "Partial", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8000", cfg.Inspect.Addr)
}

func TestLoadFile_EnvOverridesYAML(t *testing.T) {
	unsetEnv(t, configKeys...)
	t.Setenv("LOG_LEVEL", "debug")
	path := writeFile(t, "config.yaml", "log:\n  level: error\n")

	cfg, err := config.LoadFile(path, missingEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "bad.yaml", "app: [unclosed\n")
	_, err = config.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestGet(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	assert.Equal(t, "hello", config.Get("CUSTOM_KEY", "default"))

	unsetEnv(t, "MISSING_KEY")
	assert.Equal(t, "fallback", config.Get("MISSING_KEY", "fallback"))
}
