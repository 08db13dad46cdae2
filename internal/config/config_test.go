package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"contour-sketch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "LOG_FILE", "DEBUG", "PORT", "UPLOAD_DIR", "OUTPUT_DIR", "CONTOUR_SKETCH_BACKEND"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, int64(16<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, time.Hour, cfg.Server.FileTTL)
	assert.Equal(t, BackendNative, cfg.Backend)
	assert.Equal(t, models.DefaultConversionParams(), cfg.Conversion)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: "8081"
  file_ttl: 30m
log:
  level: warn
conversion:
  min_contour_length: 25
  stroke_width: 2.5
  stroke_color: red
  background_color: "#FFF"
  block_size: 15
  threshold_c: 4
backend: opencv
`)
	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Server.FileTTL)
	assert.Equal(t, 10*time.Minute, cfg.Server.CleanupInterval)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, BackendOpenCV, cfg.Backend)
	assert.Equal(t, 25, cfg.Conversion.MinContourLength)
	assert.Equal(t, 2.5, cfg.Conversion.StrokeWidth)
	assert.Equal(t, "red", cfg.Conversion.StrokeColor)
	assert.Equal(t, 15, cfg.Conversion.BlockSize)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "backend: gpu\n"))
	assert.ErrorContains(t, err, "unknown backend")

	_, err = Load(writeConfig(t, "conversion:\n  block_size: 8\n"))
	var perr *models.InvalidParameterError
	assert.True(t, errors.As(err, &perr))

	_, err = Load(writeConfig(t, "server:\n  prot: 1\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("DEBUG", "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestNewLoggerWithFile(t *testing.T) {
	cfg := Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "app.log")

	log, err := cfg.NewLogger()
	require.NoError(t, err)
	log.Info("Config", "ready", nil)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ready")
}
