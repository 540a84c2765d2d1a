// Package orbit drives a camera looking out from the centre of a panorama.
// Orientation is kept as latitude/longitude in degrees.
package orbit

import (
	"math"
	"time"

	"github.com/ungerik/go3d/float64/vec3"

	"wombatlord/panoview/src/util"
)

const (
	// MaxLat keeps the camera off the poles, where longitude degenerates.
	MaxLat = 85.0

	dragGain   = 10.0
	decay      = 0.9
	idleEasing = 0.01
)

// Settings tune a Controls.
type Settings struct {
	IdleDelay     time.Duration
	RotationSpeed float64 // degrees of longitude per update when idle
	Radius        float64 // distance of the look target
}

// DefaultSettings match the viewer's stock behaviour.
var DefaultSettings = Settings{
	IdleDelay:     5 * time.Second,
	RotationSpeed: 0.1,
	Radius:        500,
}

// Point is a pointer position in viewport pixels.
type Point struct{ X, Y float64 }

// Viewport is the size of the surface pointer positions are measured in.
type Viewport struct{ Width, Height float64 }

// Controls turns pointer drags into camera motion with momentum, and slowly
// spins the camera once the user has left it alone for a while.
type Controls struct {
	Settings

	Lat, Lon float64
	Velocity Point
	Target   vec3.T

	interacting     bool
	lastInteraction time.Time
	lastPos         Point
}

// NewControls returns controls facing longitude lon, latitude lat.
func NewControls(s Settings, lon, lat float64) *Controls {
	c := &Controls{Settings: s, Lon: lon, Lat: lat}
	c.Target = Direction(c.Lat, c.Lon, c.Radius)
	return c
}

// Interacting reports whether a drag is in progress.
func (c *Controls) Interacting() bool { return c.interacting }

// MouseDown starts a drag at p.
func (c *Controls) MouseDown(p Point) {
	c.interacting = true
	c.lastPos = p
}

// MouseMove feeds drag motion into the camera velocity. Moves outside a
// drag are ignored.
func (c *Controls) MouseMove(p Point, vp Viewport) {
	if !c.interacting || vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	c.Velocity.X -= (p.X - c.lastPos.X) / vp.Width * dragGain
	c.Velocity.Y += (p.Y - c.lastPos.Y) / vp.Height * dragGain
	c.lastPos = p
}

// MouseUp ends a drag. The idle timer starts at now.
func (c *Controls) MouseUp(now time.Time) {
	c.interacting = false
	c.lastInteraction = now
}

// Idle reports whether auto-rotation is active at now.
func (c *Controls) Idle(now time.Time) bool {
	return !c.interacting && now.Sub(c.lastInteraction) > c.IdleDelay
}

// Update advances the camera by one frame and returns the new look target.
func (c *Controls) Update(now time.Time) vec3.T {
	if c.Idle(now) {
		c.Velocity.X = util.Lerp(c.Velocity.X, c.RotationSpeed, idleEasing)
		c.Lat = util.Lerp(c.Lat, 0, idleEasing)
	}

	c.Lat = util.Clamp(c.Lat, -MaxLat, MaxLat)
	c.Target = Direction(c.Lat, c.Lon, c.Radius)

	c.Lon += c.Velocity.X
	c.Lat += c.Velocity.Y

	c.Velocity.X *= decay
	c.Velocity.Y *= decay
	return c.Target
}

// View returns the camera as seen by a renderer.
func (c *Controls) View(fov float64) View {
	return View{Forward: c.Target.Normalized(), FOV: fov}
}

// Animator spins the camera at a constant rate with no user input.
type Animator struct {
	RotationSpeed float64
	Radius        float64
	Lat, Lon      float64
	Target        vec3.T
}

// Update advances the animation by one frame.
func (a *Animator) Update() vec3.T {
	a.Lon += a.RotationSpeed
	a.Lat = util.Clamp(a.Lat, -MaxLat, MaxLat)
	a.Target = Direction(a.Lat, a.Lon, a.Radius)
	return a.Target
}

// View returns the animated camera as seen by a renderer.
func (a *Animator) View(fov float64) View {
	return View{Forward: a.Target.Normalized(), FOV: fov}
}

// Direction converts latitude and longitude in degrees to a point at
// distance r. Latitude 0, longitude 0 looks down +x; positive latitude
// looks up.
func Direction(lat, lon, r float64) vec3.T {
	phi := (90 - lat) * math.Pi / 180
	theta := lon * math.Pi / 180
	return vec3.T{
		r * math.Sin(phi) * math.Cos(theta),
		r * math.Cos(phi),
		r * math.Sin(phi) * math.Sin(theta),
	}
}
