package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"

	"wombatlord/panoview/cubemap"
	"wombatlord/panoview/panoview"
	"wombatlord/panoview/src/config"
	"wombatlord/panoview/src/logger"
	"wombatlord/panoview/src/orbit"
	"wombatlord/panoview/src/skybox"
	"wombatlord/panoview/src/util"
)

// Charsets are some ready made glyph ramps, darkest first.
var Charsets = map[string]string{
	"block":  "█",
	"shade":  " ░▒▓█",
	"ascii":  " .*$@",
	"ascii2": " .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$",
}

// GetFpsLimiter returns an adaptor locked to the provided FPS
// that takes the original unlimited buffer and a new buffer to be populated with one
// frame per tick where a tick is 1/fps seconds.
func GetFpsLimiter(fps int) func(in <-chan image.Image, out chan<- image.Image) {
	return func(in <-chan image.Image, out chan<- image.Image) {
		defer close(out)
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		for range ticker.C {
			frame, ok := <-in
			if !ok {
				return
			}
			out <- frame
		}
	}
}

// FrameEndHook is a function that decides what happens between frames.
// this is used to switch from animation mode to printout mode
type FrameEndHook func(writer io.Writer, seekBack int) error

// FrameEndHooks is just a named collection of the above
type FrameEndHooks struct {
	Print, Animate FrameEndHook
}

var frameEndHooks = FrameEndHooks{
	// Print is the appropriate frame end hook to use when the output is intended to be a still image.
	Print: func(writer io.Writer, _ int) error {
		_, err := fmt.Fprintln(writer, util.Normalizer)
		return err
	},
	// Animate is the appropriate frame end hook when subsequent images are to be treated as frames in an
	// animation.
	Animate: func(writer io.Writer, seekBack int) error {
		_, err := fmt.Fprint(writer, util.MoveUp(seekBack))
		return err
	},
}

// NewPrinter builds the glyph printer for the view settings.
func NewPrinter(view config.ViewConfig) *panoview.GlyphPrint {
	glyphs := view.Charset
	if named, ok := Charsets[glyphs]; ok {
		glyphs = named
	}
	return &panoview.GlyphPrint{
		Chars: panoview.MakePalette(glyphs),
		Bold:  view.Bold,
		BG:    panoview.RGBSpec(view.Background),
	}
}

// FOutFromBuf consumes frames from imageBuffer and prints each one to writer.
// It returns the height of the last frame printed. On error the rest of the
// buffer is drained in the background so its producers can finish.
func FOutFromBuf(writer io.Writer, imageBuffer <-chan image.Image, printer *panoview.GlyphPrint, frameEndHook FrameEndHook) (printedHeight int, err error) {
	defer func() {
		if err != nil {
			go drain(imageBuffer)
		}
	}()

	// Use a buffered writer so each frame reaches the terminal in one write
	bufWriter := bufio.NewWriter(writer)
	for img := range imageBuffer {
		printer.Img = img
		if printedHeight, err = printer.PrintRegion(bufWriter, panoview.RegionOf(img)); err != nil {
			return printedHeight, err
		}
		if err = frameEndHook(bufWriter, printedHeight); err != nil {
			return printedHeight, err
		}
		if err = bufWriter.Flush(); err != nil {
			return printedHeight, err
		}
	}
	return printedHeight, nil
}

func drain(imageBuffer <-chan image.Image) {
	for range imageBuffer {
	}
}

// PlayFromBuff prints the buffer as an animation, at most fps frames per
// second when fps is set.
func PlayFromBuff(writer io.Writer, imageBuffer <-chan image.Image, printer *panoview.GlyphPrint, fps int) error {
	if fps != 0 {
		limited := make(chan image.Image)
		go GetFpsLimiter(fps)(imageBuffer, limited)
		imageBuffer = limited
	}
	h, err := FOutFromBuf(writer, imageBuffer, printer, frameEndHooks.Animate)
	if err != nil {
		return err
	}
	// the Animate hook leaves the cursor on the first line of the last
	// frame; step below it
	if h > 0 {
		_, err = fmt.Fprintf(writer, "%s%dB\n", util.CSI, h)
	}
	return err
}

// PrintFromBuf prints a single still frame, or a sequence of them one after
// another.
func PrintFromBuf(writer io.Writer, imageBuffer <-chan image.Image, printer *panoview.GlyphPrint) error {
	_, err := FOutFromBuf(writer, imageBuffer, printer, frameEndHooks.Print)
	return err
}

// SkyboxFor wraps a loaded source for sampling.
func SkyboxFor(src *panoview.Source, bg panoview.RGBSpec) skybox.Skybox {
	if src.Kind == panoview.Panorama {
		return skybox.Equirect{Image: src.Panorama}
	}
	return skybox.NewCube(src.Faces, bg.RGBA())
}

// RenderFrames renders n frames into a channel, asking next for the camera
// before each one.
func RenderFrames(cfg *config.Config, sky skybox.Skybox, next func() orbit.View, n int) <-chan image.Image {
	frames := make(chan image.Image, 2)
	go func() {
		defer close(frames)
		for i := 0; i < n; i++ {
			frames <- skybox.Render(next(), sky, cfg.View.Width, cfg.View.Height, cfg.View.CellAspect)
		}
	}()
	return frames
}

// startAngles picks the initial camera orientation, flags over config.
func startAngles(cfg *config.Config, args panoview.Cli) (lon, lat float64) {
	lon, lat = cfg.Camera.StartLon, cfg.Camera.StartLat
	if args.Lon != nil {
		lon = *args.Lon
	}
	if args.Lat != nil {
		lat = *args.Lat
	}
	return lon, lat
}

// simFPS is the camera clock rate used when playback is not limited.
const simFPS = 24

// FrameClock is the camera's clock. It moves one frame interval per Tick
// however fast frames are actually rendered or printed, so the camera
// moves the same way at any playback speed.
type FrameClock struct {
	now  time.Time
	step time.Duration
}

// NewFrameClock returns a clock starting at start and stepping 1/fps.
func NewFrameClock(start time.Time, fps int) *FrameClock {
	if fps <= 0 {
		fps = simFPS
	}
	return &FrameClock{now: start, step: time.Second / time.Duration(fps)}
}

// Now returns the current camera time.
func (c *FrameClock) Now() time.Time { return c.now }

// Tick advances the clock by one frame and returns the new time.
func (c *FrameClock) Tick() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// settleFrames is how many updates a still view gets after a replayed drag
// for its momentum to die down.
const settleFrames = 60

// applyDrag replays a pointer drag, given as x y pairs in preview cells,
// through the camera controls. The drag ends at the clock's current time.
func applyDrag(cam *orbit.Controls, pts []float64, vp orbit.Viewport, now time.Time) error {
	if len(pts) == 0 {
		return nil
	}
	if len(pts)%2 != 0 || len(pts) < 4 {
		return fmt.Errorf("--drag wants at least two x y pairs, got %d numbers", len(pts))
	}
	cam.MouseDown(orbit.Point{X: pts[0], Y: pts[1]})
	for i := 2; i < len(pts); i += 2 {
		cam.MouseMove(orbit.Point{X: pts[i], Y: pts[i+1]}, vp)
	}
	cam.MouseUp(now)
	logger.Debug("applied drag", zap.Float64("vx", cam.Velocity.X), zap.Float64("vy", cam.Velocity.Y))
	return nil
}

// NewCamera builds the interactive camera from config.
func NewCamera(cfg *config.Config, lon, lat float64) *orbit.Controls {
	return orbit.NewControls(orbit.Settings{
		IdleDelay:     cfg.Camera.IdleDelay,
		RotationSpeed: cfg.Camera.RotationSpeed,
		Radius:        cfg.Camera.Radius,
	}, lon, lat)
}

func runSlice(out io.Writer, cfg *config.Config, args panoview.Cli) error {
	if len(args.Paths) != 1 {
		return fmt.Errorf("slice takes exactly one atlas, got %d paths", len(args.Paths))
	}
	path := args.Paths[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	faces, err := cubemap.SliceReader(f, cfg.Export.Layout)
	if err != nil {
		return fmt.Errorf("slicing %s: %w", path, err)
	}
	faces = panoview.ResizeFaces(faces, cfg.Export.FaceSize)

	written, err := panoview.WriteFaces(cfg.Export.OutDir, panoview.Prefix(path), faces, cfg.Export.Format)
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Fprintln(out, p)
	}
	logger.Info("sliced atlas", zap.String("path", path), zap.String("layout", cfg.Export.Layout), zap.Int("faces", len(written)))

	if args.Sheet == "" {
		return nil
	}
	return writeSheet(out, args.Sheet, faces, cfg.Export.SheetCell)
}

func writeSheet(out io.Writer, path string, faces cubemap.Faces, cell int) error {
	sheet, err := panoview.ContactSheet(faces, cell)
	if err != nil {
		return err
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		ext = "png"
	}
	enc, _, err := panoview.EncoderFor(ext)
	if err != nil {
		return err
	}
	if err := panoview.WriteImage(path, sheet, enc); err != nil {
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}

func runDetect(out io.Writer, args panoview.Cli) error {
	assignment, err := cubemap.DetectPaths(args.Paths)
	if err != nil {
		return err
	}
	if args.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", " ")
		return enc.Encode(assignment)
	}
	for _, id := range cubemap.FaceIDs {
		path, ok := assignment.Get(id)
		if !ok {
			path = "-"
		}
		fmt.Fprintf(out, "%s\t%s\n", id, path)
	}
	return nil
}

func runView(out io.Writer, cfg *config.Config, args panoview.Cli, animate bool) error {
	src, err := panoview.Load(args.Paths, cfg.Export.Layout)
	if err != nil {
		return err
	}
	logger.Info("loaded source", zap.Stringer("kind", src.Kind), zap.Strings("paths", args.Paths))

	sky := SkyboxFor(src, panoview.RGBSpec(cfg.View.Background))
	printer := NewPrinter(cfg.View)
	lon, lat := startAngles(cfg, args)

	if animate && args.Spin {
		anim := &orbit.Animator{RotationSpeed: cfg.View.OrbitSpeed, Radius: cfg.Camera.Radius, Lon: lon, Lat: lat}
		next := func() orbit.View {
			anim.Update()
			return anim.View(cfg.View.FOV)
		}
		return PlayFromBuff(out, RenderFrames(cfg, sky, next, cfg.View.Frames), printer, cfg.View.FPS)
	}

	cam := NewCamera(cfg, lon, lat)
	clock := NewFrameClock(time.Now(), cfg.View.FPS)
	vp := orbit.Viewport{Width: float64(cfg.View.Width), Height: float64(cfg.View.Height)}
	if err := applyDrag(cam, args.Drag, vp, clock.Now()); err != nil {
		return err
	}

	if !animate {
		if len(args.Drag) > 0 {
			for i := 0; i < settleFrames; i++ {
				cam.Update(clock.Tick())
			}
		}
		next := func() orbit.View { return cam.View(cfg.View.FOV) }
		return PrintFromBuf(out, RenderFrames(cfg, sky, next, 1), printer)
	}

	next := func() orbit.View {
		cam.Update(clock.Tick())
		return cam.View(cfg.View.FOV)
	}
	return PlayFromBuff(out, RenderFrames(cfg, sky, next, cfg.View.Frames), printer, cfg.View.FPS)
}

// run executes one invocation against already parsed args.
func run(out io.Writer, args panoview.Cli) error {
	cfg, err := config.Load(args.Config, args.Overrides())
	if err != nil {
		return err
	}
	if cfg.View.Background != "" {
		if _, err := panoview.RGBSpec(cfg.View.Background).Parse(); err != nil {
			return fmt.Errorf("view.background: %w", err)
		}
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	defer logger.Sync()
	logger.Sugar.Debugf("config: %+v", *cfg)

	switch args.Mode {
	case panoview.ModeSlice:
		return runSlice(out, cfg, args)
	case panoview.ModeDetect:
		return runDetect(out, args)
	case panoview.ModeView:
		return runView(out, cfg, args, false)
	case panoview.ModeOrbit:
		return runView(out, cfg, args, true)
	default:
		return fmt.Errorf("unknown mode %q", args.Mode)
	}
}

func main() {
	var args panoview.Cli
	p := arg.MustParse(&args)
	if len(args.Paths) == 0 {
		p.Fail("at least one image path is required")
	}
	if err := run(os.Stdout, args); err != nil {
		logger.Error("panoview failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintln(os.Stderr, "panoview:", err)
		os.Exit(1)
	}
}
