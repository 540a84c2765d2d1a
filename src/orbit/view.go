package orbit

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// View is a pinhole camera at the origin.
type View struct {
	Forward vec3.T  // unit look direction
	FOV     float64 // vertical field of view, degrees
}

// Basis returns the right and up vectors that go with Forward. Forward is
// kept off the poles by MaxLat, so world up is never parallel to it.
func (v View) Basis() (right, up vec3.T) {
	right = vec3.Cross(&v.Forward, &vec3.UnitY)
	right.Normalize()
	up = vec3.Cross(&right, &v.Forward)
	up.Normalize()
	return right, up
}

// Rays returns a function mapping normalized screen coordinates to a unit
// ray direction. sx runs -1..1 left to right, sy -1..1 bottom to top;
// aspect is the width/height ratio of the screen.
func (v View) Rays(aspect float64) func(sx, sy float64) vec3.T {
	right, up := v.Basis()
	h := math.Tan(v.FOV * math.Pi / 360)
	w := h * aspect
	fwd := v.Forward
	return func(sx, sy float64) vec3.T {
		r := right.Scaled(sx * w)
		u := up.Scaled(sy * h)
		d := vec3.Add(&fwd, &r)
		d = vec3.Add(&d, &u)
		return *d.Normalize()
	}
}
