// Package config loads runtime settings from an optional YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"contour-sketch/internal/logger"
	"contour-sketch/internal/models"

	"gopkg.in/yaml.v3"
)

const (
	BackendNative = "native"
	BackendOpenCV = "opencv"
)

type Config struct {
	Server     ServerConfig            `yaml:"server"`
	Log        LogConfig               `yaml:"log"`
	Conversion models.ConversionParams `yaml:"conversion"`
	// Backend selects the binarizer and contour extractor: native or opencv.
	Backend string `yaml:"backend"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	UploadDir       string        `yaml:"upload_dir"`
	OutputDir       string        `yaml:"output_dir"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	FileTTL         time.Duration `yaml:"file_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "5000",
			UploadDir:       "uploads",
			OutputDir:       "outputs",
			MaxUploadBytes:  16 << 20,
			FileTTL:         time.Hour,
			CleanupInterval: 10 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Conversion: models.DefaultConversionParams(),
		Backend:    BackendNative,
	}
}

// Load builds the configuration from defaults, then the YAML file at path when
// path is not empty, then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)
	if v := os.Getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DEBUG value %q: %w", v, err)
		}
		c.Log.Debug = debug
	}

	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.UploadDir = getEnv("UPLOAD_DIR", c.Server.UploadDir)
	c.Server.OutputDir = getEnv("OUTPUT_DIR", c.Server.OutputDir)
	c.Backend = getEnv("CONTOUR_SKETCH_BACKEND", c.Backend)
	return nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendNative, BackendOpenCV:
	default:
		return fmt.Errorf("unknown backend %q: must be %s or %s", c.Backend, BackendNative, BackendOpenCV)
	}

	if _, err := logger.ParseLevel(c.Log.Level, c.Log.Debug); err != nil {
		return err
	}
	if err := c.Conversion.Validate(); err != nil {
		return fmt.Errorf("conversion defaults: %w", err)
	}

	s := c.Server
	if s.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if s.UploadDir == "" || s.OutputDir == "" {
		return fmt.Errorf("upload and output directories must be set")
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", s.MaxUploadBytes)
	}
	if s.FileTTL <= 0 || s.CleanupInterval <= 0 || s.ShutdownTimeout <= 0 {
		return fmt.Errorf("file_ttl, cleanup_interval and shutdown_timeout must be positive")
	}
	return nil
}

// NewLogger builds the zerolog-backed logger described by the log section.
func (c *Config) NewLogger() (*logger.ZerologAdapter, error) {
	level, err := logger.ParseLevel(c.Log.Level, c.Log.Debug)
	if err != nil {
		return nil, err
	}
	if c.Log.File != "" {
		return logger.NewTeeLogger(level, c.Log.File)
	}
	return logger.NewConsoleLogger(level), nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
