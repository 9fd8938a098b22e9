package api

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	platformobservability "github.com/Apurer/go-gin-store-api/internal/platform/observability"
)

// Backend selects the persistence adapter behind the services.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port            string
	Backend         Backend
	LenientVariants bool
	CORSOrigins     []string
	LogLevel        slog.Level
	GinMode         string
	Environment     string
	ShutdownTimeout time.Duration
	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceToStdout   bool
}

// LoadEnvFiles loads KEY=VALUE files into the environment. Variables that are
// already set win, and missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:            envDefault("PORT", "8080"),
		Backend:         Backend(strings.ToLower(envDefault("STORE_BACKEND", string(BackendMemory)))),
		LenientVariants: isTruthy(os.Getenv("STORE_LENIENT_VARIANTS")),
		CORSOrigins:     splitList(envDefault("CORS_ALLOWED_ORIGINS", "*")),
		GinMode:         envDefault("GIN_MODE", "release"),
		Environment:     envDefault("ENVIRONMENT", "local"),
		ShutdownTimeout: 10 * time.Second,
		OTLPEndpoint:    strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:    os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0",
		TraceToStdout:   isTruthy(os.Getenv("OTEL_TRACES_STDOUT")),
	}
	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return Config{}, fmt.Errorf("PORT must be a TCP port number, got %q", cfg.Port)
	}
	switch cfg.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendMemory, BackendSQLite, cfg.Backend)
	}
	level, err := platformobservability.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return Config{}, fmt.Errorf("GIN_MODE must be debug, release or test, got %q", cfg.GinMode)
	}
	if raw := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
