package panoview

import (
	"image"

	"wombatlord/panoview/src/config"
)

// Modes selectable with --mode.
const (
	ModeSlice  = "slice"
	ModeDetect = "detect"
	ModeView   = "view"
	ModeOrbit  = "orbit"
)

type Cli struct {
	Paths    []string  `arg:"positional" help:"image files: one panorama or atlas, or up to six named cube faces"`
	Mode     string    `arg:"-m, --mode" help:"slice, detect, view or orbit" default:"view"`
	Config   string    `arg:"--config" help:"path to a panoview.yaml"`
	Layout   string    `arg:"-l, --layout" help:"atlas layout"`
	Format   string    `arg:"-f, --format" help:"face output format: png, jpeg, bmp or tiff"`
	FaceSize int       `arg:"--face-size" help:"resize exported faces to this many pixels square"`
	OutDir   string    `arg:"-o, --out" help:"directory faces are written to"`
	Sheet    string    `arg:"--sheet" help:"also write a labelled contact sheet of the faces to this file"`
	JSON     bool      `arg:"--json" help:"print the detect result as JSON"`
	Lon      *float64  `arg:"--lon" help:"starting camera longitude in degrees"`
	Lat      *float64  `arg:"--lat" help:"starting camera latitude in degrees"`
	Drag     []float64 `arg:"--drag" help:"x y pairs of a pointer drag across the preview, replayed before a still view"`
	Width    int       `arg:"--width" help:"preview width in terminal cells"`
	Height   int       `arg:"--height" help:"preview height in terminal cells"`
	Charset  string    `arg:"-c, --charset" help:"glyphs to paint cells with, darkest first"`
	Bold     bool      `arg:"-b, --bold" help:"print glyphs in bold"`
	FPS      int       `arg:"--fps" help:"upper limit on orbit playback speed"`
	Frames   int       `arg:"--frames" help:"number of frames to play in orbit mode"`
	Spin     bool      `arg:"--spin" help:"orbit at a constant view.orbit_speed instead of easing into the idle rotation"`
	Debug    bool      `arg:"--debug" help:"debug logging"`
	LogFile  string    `arg:"--log-file" help:"also log to this file, rotated"`
}

func (Cli) Description() string {
	return "panoview slices cubemap atlases, matches cube face files by name and previews panoramas in the terminal"
}

// Overrides returns the flags that take precedence over the config file.
func (c Cli) Overrides() config.Overrides {
	return config.Overrides{
		Layout:   c.Layout,
		Format:   c.Format,
		FaceSize: c.FaceSize,
		OutDir:   c.OutDir,
		Width:    c.Width,
		Height:   c.Height,
		FPS:      c.FPS,
		Frames:   c.Frames,
		Charset:  c.Charset,
		Bold:     c.Bold,
		Debug:    c.Debug,
		LogFile:  c.LogFile,
	}
}

// Region fields define the area of a frame that will be printed.
type Region struct{ Left, Top, Right, Btm int }

// RegionOf covers the whole of img.
func RegionOf(img image.Image) Region {
	b := img.Bounds()
	return Region{Left: b.Min.X, Top: b.Min.Y, Right: b.Max.X, Btm: b.Max.Y}
}
