package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked for when no path is given.
const FileName = "panoview.yaml"

// Overrides are values set on the command line. Zero values are not
// applied.
type Overrides struct {
	Layout   string
	Format   string
	FaceSize int
	OutDir   string
	Width    int
	Height   int
	FPS      int
	Frames   int
	Charset  string
	Bold     bool
	Debug    bool
	LogFile  string
}

// Load loads configuration with priority: defaults < file < overrides.
// An empty path searches the standard locations.
func Load(path string, o Overrides) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	o.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (o Overrides) apply(cfg *Config) {
	if o.Layout != "" {
		cfg.Export.Layout = o.Layout
	}
	if o.Format != "" {
		cfg.Export.Format = o.Format
	}
	if o.FaceSize > 0 {
		cfg.Export.FaceSize = o.FaceSize
	}
	if o.OutDir != "" {
		cfg.Export.OutDir = o.OutDir
	}
	if o.Width > 0 {
		cfg.View.Width = o.Width
	}
	if o.Height > 0 {
		cfg.View.Height = o.Height
	}
	if o.FPS > 0 {
		cfg.View.FPS = o.FPS
	}
	if o.Frames > 0 {
		cfg.View.Frames = o.Frames
	}
	if o.Charset != "" {
		cfg.View.Charset = o.Charset
	}
	if o.Bold {
		cfg.View.Bold = true
	}
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{"./" + FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "panoview", FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
