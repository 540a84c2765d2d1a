// Package skybox samples environment images by view direction and renders
// camera views of them.
package skybox

import (
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"

	"github.com/ungerik/go3d/float64/vec3"

	"wombatlord/panoview/cubemap"
	"wombatlord/panoview/src/orbit"
)

// Skybox returns the color seen looking along a unit direction.
type Skybox interface {
	Sample(dir vec3.T) color.RGBA
}

// ------------------------------------------------------------

// Equirect wraps a panorama covering 360 degrees horizontally and 180
// vertically. The image centre is the +x direction.
type Equirect struct {
	Image image.Image
}

func (e Equirect) Sample(dir vec3.T) color.RGBA {
	u := 0.5 + math.Atan2(dir[2], dir[0])/(2*math.Pi)
	v := 0.5 - math.Asin(clampUnit(dir[1]))/math.Pi
	return sampleUV(e.Image, u, v)
}

// ------------------------------------------------------------

// Cube wraps six face images in cube texture order. Faces left nil sample
// as Fallback.
type Cube struct {
	Faces    [cubemap.FaceCount]image.Image
	Fallback color.RGBA
}

// NewCube builds a Cube from sliced or loaded faces.
func NewCube(faces cubemap.Faces, fallback color.RGBA) Cube {
	return Cube{Faces: faces.Ordered(), Fallback: fallback}
}

// Sample looks the cube up from the inside. Face images are authored to be
// seen from within the cube, so x is mirrored before the face is picked:
// facing +z, the negx tile is on the left.
func (c Cube) Sample(dir vec3.T) color.RGBA {
	id, u, v := CubeFace(vec3.T{-dir[0], dir[1], dir[2]})
	img := c.Faces[id]
	if img == nil {
		return c.Fallback
	}
	return sampleUV(img, u, v)
}

// CubeFace picks the face a direction lands on and the texture coordinates
// within it, following the usual cube map convention: the major axis picks
// the face, the other two components are projected onto it.
func CubeFace(dir vec3.T) (id cubemap.FaceID, u, v float64) {
	x, y, z := dir[0], dir[1], dir[2]
	ax, ay, az := math.Abs(x), math.Abs(y), math.Abs(z)

	var sc, tc, ma float64
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if x > 0 {
			id, sc, tc = cubemap.PosX, -z, -y
		} else {
			id, sc, tc = cubemap.NegX, z, -y
		}
	case ay >= az:
		ma = ay
		if y > 0 {
			id, sc, tc = cubemap.PosY, x, z
		} else {
			id, sc, tc = cubemap.NegY, x, -z
		}
	default:
		ma = az
		if z > 0 {
			id, sc, tc = cubemap.PosZ, x, -y
		} else {
			id, sc, tc = cubemap.NegZ, -x, -y
		}
	}
	if ma == 0 {
		return cubemap.PosZ, 0.5, 0.5
	}
	return id, (sc/ma + 1) / 2, (tc/ma + 1) / 2
}

// ------------------------------------------------------------

// Render draws what view sees of sky into a w x h frame. cellAspect is the
// width/height ratio of one output pixel, so frames meant for terminal
// cells come out undistorted. Rows are rendered in parallel.
func Render(view orbit.View, sky Skybox, w, h int, cellAspect float64) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return frame
	}
	ray := view.Rays(float64(w) / float64(h) * cellAspect)

	rows := make(chan int, h)
	for y := 0; y < h; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for i := 0; i < runtime.GOMAXPROCS(0); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				sy := 1 - 2*(float64(y)+0.5)/float64(h)
				for x := 0; x < w; x++ {
					sx := 2*(float64(x)+0.5)/float64(w) - 1
					frame.SetRGBA(x, y, sky.Sample(ray(sx, sy)))
				}
			}
		}()
	}
	wg.Wait()
	return frame
}

// sampleUV does a nearest-neighbour lookup, u and v in 0..1 from the top
// left. Coordinates outside the image are clamped to its edge.
func sampleUV(img image.Image, u, v float64) color.RGBA {
	b := img.Bounds()
	x := b.Min.X + int(u*float64(b.Dx()))
	y := b.Min.Y + int(v*float64(b.Dy()))
	x = max(b.Min.X, min(b.Max.X-1, x))
	y = max(b.Min.Y, min(b.Max.Y-1, y))
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba.RGBAAt(x, y)
	}
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func clampUnit(f float64) float64 { return max(-1, min(1, f)) }
