package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ent0n29/tasktracker/internal/tasks"
)

// Config contains all runtime settings for the task tracker.
type Config struct {
	LogLevel         string
	LogFormat        string
	MetricsNamespace string
	MetricsFile      string
	SyncDelay        time.Duration
	StatusFilter     tasks.TaskStatus
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		LogLevel:         strings.ToLower(envOrDefault("APP_LOG_LEVEL", "info")),
		LogFormat:        strings.ToLower(envOrDefault("APP_LOG_FORMAT", "json")),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "tasktracker"),
		MetricsFile:      envOrDefault("APP_METRICS_FILE", ""),
		SyncDelay:        tasks.DefaultSyncDelay,
	}
	var err error
	cfg.SyncDelay, err = durationFromEnv("TASKS_SYNC_DELAY", cfg.SyncDelay)
	if err != nil {
		return Config{}, err
	}
	if v := envOrDefault("TASKS_STATUS_FILTER", ""); v != "" {
		cfg.StatusFilter, err = tasks.ParseTaskStatus(v)
		if err != nil {
			return Config{}, fmt.Errorf("TASKS_STATUS_FILTER parse error: %w", err)
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("APP_LOG_LEVEL must be one of debug|info|warn|error, got %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return Config{}, fmt.Errorf("APP_LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}
	if cfg.SyncDelay <= 0 {
		return Config{}, fmt.Errorf("TASKS_SYNC_DELAY must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}
