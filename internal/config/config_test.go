package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Valid(t *testing.T) {
	yaml := `
batch:
  workers: 8
  chunk_size: 1024
log:
  level: debug
metrics:
  namespace: picu
`
	cfg := loadFromString(t, yaml)

	if cfg.Batch.Workers != 8 {
		t.Errorf("workers: got %d", cfg.Batch.Workers)
	}
	if cfg.Batch.ChunkSize != 1024 {
		t.Errorf("chunk_size: got %d", cfg.Batch.ChunkSize)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("log level: got %v", cfg.Log.SlogLevel())
	}
	if cfg.Metrics.Namespace != "picu" {
		t.Errorf("namespace: got %q", cfg.Metrics.Namespace)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFromString(t, "batch:\n  workers: 2\n")

	if cfg.Batch.ChunkSize != DefaultChunkSize {
		t.Errorf("default chunk_size: got %d, want %d", cfg.Batch.ChunkSize, DefaultChunkSize)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("default log level: got %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("default namespace: got %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg := loadFromString(t, "")
	if cfg.Batch.Workers != 0 {
		t.Errorf("workers: got %d, want 0 (GOMAXPROCS)", cfg.Batch.Workers)
	}
	if cfg.Batch.ChunkSize != DefaultChunkSize {
		t.Errorf("chunk_size: got %d", cfg.Batch.ChunkSize)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative workers", "batch:\n  workers: -1\n"},
		{"zero chunk size", "batch:\n  chunk_size: 0\n"},
		{"negative chunk size", "batch:\n  chunk_size: -10\n"},
		{"unknown log level", "log:\n  level: verbose\n"},
		{"empty namespace", "metrics:\n  namespace: \"\"\n"},
		{"malformed yaml", "batch: [workers\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadStringErr(t, tc.yaml); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"  debug  ", slog.LevelDebug},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseLogLevel(tc.input); got != tc.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

// --- Watch ---

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, filepath.Join(t.TempDir(), "phoenix.yaml"), "batch:\n  workers: 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { updates <- c })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	replaceConfig(t, path, "batch:\n  workers: 6\n")

	select {
	case c := <-updates:
		if c.Batch.Workers != 6 {
			t.Errorf("reloaded workers = %d, want 6", c.Batch.Workers)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() returned %v after cancel", err)
	}
}

func TestWatch_InvalidReloadKeepsPrevious(t *testing.T) {
	path := writeConfig(t, filepath.Join(t.TempDir(), "phoenix.yaml"), "batch:\n  workers: 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan *Config, 4)
	go func() { _ = Watch(ctx, path, func(c *Config) { updates <- c }) }()

	time.Sleep(100 * time.Millisecond)
	replaceConfig(t, path, "batch:\n  workers: -3\n")

	select {
	case c := <-updates:
		t.Fatalf("onChange called with invalid config: %+v", c)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_MissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "phoenix.yaml"), func(*Config) {})
	if err == nil {
		t.Fatal("expected error watching a missing directory, got nil")
	}
}

// loadFromString writes yaml to a temp file and calls Load, failing on error.
func loadFromString(t *testing.T, content string) *Config {
	t.Helper()
	cfg, err := loadStringErr(t, content)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	return cfg
}

// loadStringErr writes yaml to a temp file and calls Load, returning any error.
func loadStringErr(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := writeConfig(t, filepath.Join(t.TempDir(), "phoenix.yaml"), content)
	return Load(path)
}

func writeConfig(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

// replaceConfig swaps content in with a rename, the way atomic-save editors do.
func replaceConfig(t *testing.T, path, content string) {
	t.Helper()
	tmp := writeConfig(t, path+".tmp", content)
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename temp config: %v", err)
	}
}
