package skybox

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"

	"wombatlord/panoview/cubemap"
	"wombatlord/panoview/src/orbit"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func faceColor(id cubemap.FaceID) color.RGBA {
	return color.RGBA{R: uint8(40 * (int(id) + 1)), A: 255}
}

func testCube() Cube {
	faces := cubemap.Faces{}
	for _, id := range cubemap.FaceIDs {
		faces[id] = &cubemap.FaceImage{ID: id, Image: solidImage(4, 4, faceColor(id))}
	}
	return NewCube(faces, color.RGBA{A: 255})
}

func TestCubeFace(t *testing.T) {
	tests := []struct {
		dir  vec3.T
		want cubemap.FaceID
	}{
		{vec3.T{1, 0, 0}, cubemap.PosX},
		{vec3.T{-1, 0.2, 0}, cubemap.NegX},
		{vec3.T{0.1, 1, 0}, cubemap.PosY},
		{vec3.T{0, -1, 0.3}, cubemap.NegY},
		{vec3.T{0, 0, 1}, cubemap.PosZ},
		{vec3.T{0.5, 0.5, -1}, cubemap.NegZ},
	}
	for _, tt := range tests {
		id, u, v := CubeFace(tt.dir)
		assert.Equal(t, tt.want, id, "%v", tt.dir)
		assert.True(t, u >= 0 && u <= 1 && v >= 0 && v <= 1, "uv %v %v", u, v)
	}

	_, u, v := CubeFace(vec3.T{1, 0, 0})
	assert.InDelta(t, 0.5, u, 1e-9)
	assert.InDelta(t, 0.5, v, 1e-9)
}

func TestCubeSample(t *testing.T) {
	c := testCube()
	assert.Equal(t, faceColor(cubemap.NegZ), c.Sample(vec3.T{0, 0, -1}))
	assert.Equal(t, faceColor(cubemap.PosY), c.Sample(vec3.T{0, 1, 0}))

	c.Faces[cubemap.PosY] = nil
	assert.Equal(t, c.Fallback, c.Sample(vec3.T{0, 1, 0}))
}

func TestEquirectSample(t *testing.T) {
	// left half red, right half blue; top row white
	img := solidImage(8, 4, color.RGBA{R: 255, A: 255})
	for y := 0; y < 4; y++ {
		for x := 4; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	for x := 0; x < 8; x++ {
		img.SetRGBA(x, 0, color.RGBA{255, 255, 255, 255})
	}
	e := Equirect{Image: img}

	// +z is a quarter turn right of the centre
	assert.Equal(t, color.RGBA{B: 255, A: 255}, e.Sample(vec3.T{0, 0, 1}))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, e.Sample(vec3.T{0, 0, -1}))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, e.Sample(vec3.T{0, 1, 0}))
}

func TestRender(t *testing.T) {
	view := orbit.View{Forward: vec3.T{0, 0, -1}, FOV: 60}
	frame := Render(view, testCube(), 20, 10, 0.5)
	require.Equal(t, image.Rect(0, 0, 20, 10), frame.Bounds())
	// a narrow view straight down -z sees only that face
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			require.Equal(t, faceColor(cubemap.NegZ), frame.RGBAAt(x, y))
		}
	}

	empty := Render(view, testCube(), 0, 0, 1)
	assert.True(t, empty.Bounds().Empty())
}

func TestRenderCubeNotMirrored(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}

	front := solidImage(4, 4, red)
	for y := 0; y < 4; y++ {
		for x := 2; x < 4; x++ {
			front.SetRGBA(x, y, blue)
		}
	}
	c := testCube()
	c.Faces[cubemap.PosZ] = front
	c.Faces[cubemap.NegX] = solidImage(4, 4, green)

	// longitude 90 faces +z
	cam := orbit.NewControls(orbit.DefaultSettings, 90, 0)

	frame := Render(cam.View(60), c, 20, 10, 0.5)
	assert.Equal(t, red, frame.RGBAAt(0, 5), "screen left")
	assert.Equal(t, blue, frame.RGBAAt(19, 5), "screen right")

	// wide enough to see past the front face's edges: negx sits to its
	// left in the atlas and on screen
	wide := Render(cam.View(120), c, 20, 10, 0.5)
	assert.Equal(t, green, wide.RGBAAt(0, 5), "far left")
	assert.Equal(t, faceColor(cubemap.PosX), wide.RGBAAt(19, 5), "far right")
}

func BenchmarkRender(b *testing.B) {
	view := orbit.NewControls(orbit.DefaultSettings, 30, 10).View(75)
	sky := Equirect{Image: solidImage(1024, 512, color.RGBA{1, 2, 3, 255})}
	for n := 0; n < b.N; n++ {
		Render(view, sky, 160, 48, 0.5)
	}
}
