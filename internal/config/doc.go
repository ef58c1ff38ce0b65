// Package config loads and watches the batch engine configuration file
// (phoenix.yaml).
//
// Top-level types:
//   - Config{Batch, Log, Metrics}: full config tree parsed from YAML
//   - BatchConfig: workers, chunk_size
//   - LogConfig: level (debug|info|warn|error); SlogLevel() maps it to slog
//   - MetricsConfig: namespace used as the Prometheus metric prefix
//
// Load(path) reads the YAML file, applies defaults (GOMAXPROCS workers,
// 4096 chunk size, info level, "phoenix" namespace), then validates.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It watches the parent directory so
// the rename→create pattern used by atomic-save editors is still seen.
package config
