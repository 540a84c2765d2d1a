// Package config handles panoview configuration loading.
package config

import (
	"fmt"
	"time"

	"wombatlord/panoview/cubemap"
)

// Config holds all panoview settings.
type Config struct {
	View    ViewConfig    `yaml:"view"`
	Camera  CameraConfig  `yaml:"camera"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewConfig controls the terminal preview.
type ViewConfig struct {
	FOV        float64 `yaml:"fov"`         // vertical field of view, degrees
	Width      int     `yaml:"width"`       // frame width in cells
	Height     int     `yaml:"height"`      // frame height in cells
	CellAspect float64 `yaml:"cell_aspect"` // cell width / cell height
	FPS        int     `yaml:"fps"`
	Frames     int     `yaml:"frames"`      // frames played in orbit mode
	OrbitSpeed float64 `yaml:"orbit_speed"` // degrees of longitude per orbit frame
	Charset    string  `yaml:"charset"`     // glyphs darkest first, or a named charset
	Bold       bool    `yaml:"bold"`
	Background string  `yaml:"background"` // "r:g:b", empty for none
}

// CameraConfig holds the orbit camera behaviour.
type CameraConfig struct {
	IdleDelay     time.Duration `yaml:"idle_delay"`
	RotationSpeed float64       `yaml:"rotation_speed"` // degrees per update
	Radius        float64       `yaml:"radius"`
	StartLon      float64       `yaml:"start_lon"`
	StartLat      float64       `yaml:"start_lat"`
}

// ExportConfig holds face export settings.
type ExportConfig struct {
	Layout    string `yaml:"layout"`
	Format    string `yaml:"format"`
	FaceSize  int    `yaml:"face_size"` // 0 keeps the sliced size
	OutDir    string `yaml:"out_dir"`
	SheetCell int    `yaml:"sheet_cell"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			FOV:        75,
			Width:      120,
			Height:     40,
			CellAspect: 0.5,
			FPS:        24,
			Frames:     240,
			OrbitSpeed: 1.5,
			Charset:    "█",
		},
		Camera: CameraConfig{
			IdleDelay:     5 * time.Second,
			RotationSpeed: 0.1,
			Radius:        500,
		},
		Export: ExportConfig{
			Layout:    cubemap.DefaultLayout,
			Format:    "png",
			OutDir:    ".",
			SheetCell: 128,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

var formats = map[string]bool{"png": true, "jpeg": true, "jpg": true, "bmp": true, "tiff": true}

// Validate rejects settings nothing downstream can work with.
func (c *Config) Validate() error {
	if c.View.FOV <= 0 || c.View.FOV >= 180 {
		return fmt.Errorf("view.fov must be in (0, 180), got %v", c.View.FOV)
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return fmt.Errorf("view size must be positive, got %dx%d", c.View.Width, c.View.Height)
	}
	if c.View.CellAspect <= 0 {
		return fmt.Errorf("view.cell_aspect must be positive, got %v", c.View.CellAspect)
	}
	if c.View.FPS < 0 || c.View.Frames < 0 {
		return fmt.Errorf("view.fps and view.frames must not be negative")
	}
	if c.View.Charset == "" {
		return fmt.Errorf("view.charset must not be empty")
	}
	if _, err := cubemap.LookupLayout(c.Export.Layout); err != nil {
		return err
	}
	if !formats[c.Export.Format] {
		return fmt.Errorf("export.format %q is not one of png, jpeg, bmp, tiff", c.Export.Format)
	}
	if c.Export.FaceSize < 0 || c.Export.SheetCell < 0 {
		return fmt.Errorf("export sizes must not be negative")
	}
	return nil
}
