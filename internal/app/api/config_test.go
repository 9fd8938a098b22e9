package api

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "STORE_BACKEND", "STORE_LENIENT_VARIANTS", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
	"GIN_MODE", "ENVIRONMENT", "SHUTDOWN_TIMEOUT_SECONDS", "OTEL_EXPORTER_OTLP_ENDPOINT",
	"OTEL_EXPORTER_OTLP_INSECURE", "OTEL_TRACES_STDOUT",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, BackendMemory, cfg.Backend)
	require.False(t, cfg.LenientVariants)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.Equal(t, "release", cfg.GinMode)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.True(t, cfg.OTLPInsecure)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("STORE_LENIENT_VARIANTS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, BackendSQLite, cfg.Backend)
	require.True(t, cfg.LenientVariants)
	require.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	require.False(t, cfg.OTLPInsecure)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                     "http",
		"STORE_BACKEND":            "postgres",
		"LOG_LEVEL":                "chatty",
		"GIN_MODE":                 "turbo",
		"SHUTDOWN_TIMEOUT_SECONDS": "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(key, value)
			_, err := LoadConfig()
			require.ErrorContains(t, err, key)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "7000")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=6000\nSTORE_BACKEND=sqlite\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("STORE_BACKEND") })
	// godotenv skips keys that are present, even when empty.
	require.NoError(t, os.Unsetenv("STORE_BACKEND"))

	require.NoError(t, LoadEnvFiles(filepath.Join(t.TempDir(), "missing.env"), path))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.Port)
	require.Equal(t, BackendSQLite, cfg.Backend)
}
