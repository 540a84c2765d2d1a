package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 75.0, cfg.View.FOV)
	assert.Equal(t, 120, cfg.View.Width)
	assert.Equal(t, 40, cfg.View.Height)
	assert.Equal(t, 5*time.Second, cfg.Camera.IdleDelay)
	assert.Equal(t, 0.1, cfg.Camera.RotationSpeed)
	assert.Equal(t, 500.0, cfg.Camera.Radius)
	assert.Equal(t, "4x3", cfg.Export.Layout)
	assert.Equal(t, "png", cfg.Export.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "panoview.yaml")

	yamlContent := `
view:
  fov: 90
  width: 80
  height: 24
  background: "10:20:30"

camera:
  idle_delay: 2s
  rotation_speed: 0.5

export:
  format: jpeg
  face_size: 512

logging:
  level: debug
  log_file: panoview.log
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, configPath))

	assert.Equal(t, 90.0, cfg.View.FOV)
	assert.Equal(t, 80, cfg.View.Width)
	assert.Equal(t, 24, cfg.View.Height)
	assert.Equal(t, "10:20:30", cfg.View.Background)
	// untouched keys keep their defaults
	assert.Equal(t, 0.5, cfg.View.CellAspect)
	assert.Equal(t, 2*time.Second, cfg.Camera.IdleDelay)
	assert.Equal(t, 0.5, cfg.Camera.RotationSpeed)
	assert.Equal(t, 500.0, cfg.Camera.Radius)
	assert.Equal(t, "jpeg", cfg.Export.Format)
	assert.Equal(t, 512, cfg.Export.FaceSize)
	assert.Equal(t, "4x3", cfg.Export.Layout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "panoview.log", cfg.Logging.LogFile)
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
view:
  width: not a number
  invalid syntax here
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidYAML), 0644))

	assert.Error(t, loadFromFile(Default(), configPath))
	_, err := Load(configPath, Overrides{})
	assert.Error(t, err)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load("/nonexistent/path/panoview.yaml", Overrides{})
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "panoview.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("view:\n  width: 80\n  height: 30\n"), 0644))

	cfg, err := Load(configPath, Overrides{Width: 200, Debug: true, Format: "bmp", Bold: true})
	require.NoError(t, err)
	assert.True(t, cfg.View.Bold)
	assert.Equal(t, 200, cfg.View.Width)
	assert.Equal(t, 30, cfg.View.Height)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "bmp", cfg.Export.Format)
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))
	require.NoError(t, os.Chdir(tmpDir))

	assert.Equal(t, "", findConfigFile())

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte("view:\n  width: 64\n"), 0644))
	assert.NotEqual(t, "", findConfigFile())

	cfg, err := Load("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.View.Width)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fov", func(c *Config) { c.View.FOV = 180 }},
		{"size", func(c *Config) { c.View.Width = 0 }},
		{"aspect", func(c *Config) { c.View.CellAspect = 0 }},
		{"fps", func(c *Config) { c.View.FPS = -1 }},
		{"charset", func(c *Config) { c.View.Charset = "" }},
		{"layout", func(c *Config) { c.Export.Layout = "6x1" }},
		{"format", func(c *Config) { c.Export.Format = "gif" }},
		{"face size", func(c *Config) { c.Export.FaceSize = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
