// Package config loads the exifmeta CLI configuration.
//
// Settings come from, in increasing priority: built-in defaults, a YAML
// file, EXIFMETA_* environment variables, and command-line flags (applied
// by the caller).
package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/exifmeta"
)

// Config holds CLI settings.
type Config struct {
	Binary      string   `yaml:"binary"`
	BinaryArgs  []string `yaml:"binary_args"`
	CommonArgs  []string `yaml:"common_args"`
	GroupFamily int      `yaml:"group_family"`
	Workers     int      `yaml:"workers"` // 0 = one per CPU
	ChunkSize   int      `yaml:"chunk_size"`
	LogLevel    string   `yaml:"log_level"`
	Output      string   `yaml:"output"` // empty = stdout
	Format      string   `yaml:"format"` // json or msgpack
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Binary:      exifmeta.DefaultBinary,
		GroupFamily: 2,
		ChunkSize:   exifmeta.DefaultChunkSize,
		LogLevel:    "warn",
		Format:      "json",
	}
}

// Load reads a YAML file over the defaults. An empty path skips the file.
// Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("EXIFMETA_BINARY"); v != "" {
		c.Binary = v
	}
	if v := os.Getenv("EXIFMETA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Binary == "" {
		errs = append(errs, errors.New("binary must not be empty"))
	}
	if c.GroupFamily < 0 || c.GroupFamily > 7 {
		errs = append(errs, fmt.Errorf("group_family %d out of range 0-7", c.GroupFamily))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Workers))
	}
	if c.ChunkSize < 1 {
		errs = append(errs, fmt.Errorf("chunk_size %d must be positive", c.ChunkSize))
	}
	if c.Format != "json" && c.Format != "msgpack" {
		errs = append(errs, fmt.Errorf("format %q must be json or msgpack", c.Format))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Logger builds a console logger writing to stderr at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	return zc.Build()
}

// Options converts the configuration into library options.
func (c *Config) Options(logger *zap.Logger) []exifmeta.Option {
	opts := []exifmeta.Option{
		exifmeta.WithBinaryPath(c.Binary),
		exifmeta.WithChunkSize(c.ChunkSize),
		exifmeta.WithLogger(logger),
	}
	if len(c.BinaryArgs) > 0 {
		opts = append(opts, exifmeta.WithBinaryArgs(c.BinaryArgs...))
	}
	if len(c.CommonArgs) > 0 {
		opts = append(opts, exifmeta.WithCommonArgs(c.CommonArgs...))
	}
	return opts
}
