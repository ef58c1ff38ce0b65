package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultChunkSize = 4096
	DefaultLogLevel  = "info"
	DefaultNamespace = "phoenix"
)

// Config is the top-level configuration for the batch scoring engine.
// Fields map 1:1 to phoenix.example.yaml.
type Config struct {
	Batch   BatchConfig   `yaml:"batch"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// BatchConfig tunes how large cohorts are split across goroutines.
type BatchConfig struct {
	// Workers caps the number of chunks scored concurrently.
	// 0 means runtime.GOMAXPROCS(0).
	Workers int `yaml:"workers"`

	// ChunkSize is the number of entries scored per goroutine. Cohorts no
	// larger than one chunk are scored sequentially.
	ChunkSize int `yaml:"chunk_size"`
}

// LogConfig controls the engine's structured logger.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`
}

// MetricsConfig controls the Prometheus exposition.
type MetricsConfig struct {
	// Namespace prefixes every exported metric name.
	Namespace string `yaml:"namespace"`
}

// SlogLevel returns the configured level as a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	return ParseLogLevel(l.Level)
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values.
func Defaults() *Config {
	return &Config{
		Batch: BatchConfig{
			ChunkSize: DefaultChunkSize,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// ParseLogLevel converts a string log level to slog.Level.
// Defaults to slog.LevelInfo for unrecognized strings.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// validate checks structural constraints.
func validate(cfg *Config) error {
	if cfg.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative")
	}
	if cfg.Batch.ChunkSize <= 0 {
		return fmt.Errorf("batch.chunk_size must be positive")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	if cfg.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace is required")
	}
	return nil
}
