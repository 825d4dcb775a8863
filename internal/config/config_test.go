package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGeneratesDeviceID(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.DeviceID)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 200*time.Millisecond, cfg.Monitor.PollInterval())
}

func TestLoadCreatesConfigOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CLIPSTREAM_CONFIG_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.DeviceID)

	// The file was persisted so the device id survives restarts.
	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	again, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.DeviceID, again.DeviceID)
}

func TestLoadParsesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CLIPSTREAM_CONFIG_DIR", dir)

	content := `device_id: test-device
log:
  level: debug
  format: json
monitor:
  poll_interval_ms: 50
  max_bytes: 1024
  max_image_bytes: 4096
  custom_formats:
    - MyFormat
  stream_buffer: 8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-device", cfg.DeviceID)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 50*time.Millisecond, cfg.Monitor.PollInterval())
	assert.Equal(t, int64(1024), cfg.Monitor.MaxBytes)
	assert.Equal(t, int64(4096), cfg.Monitor.MaxImageBytes)
	assert.Equal(t, []string{"MyFormat"}, cfg.Monitor.CustomFormats)
	assert.Equal(t, 8, cfg.Monitor.StreamBuffer)
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CLIPSTREAM_CONFIG_DIR", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}
