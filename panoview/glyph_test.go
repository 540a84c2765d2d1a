package panoview

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wombatlord/panoview/src/util"
)

// a random number generator
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// this is a stub implementation of a frame
type stubImg struct {
	r Region
}

func (s stubImg) Bounds() image.Rectangle {
	return image.Rect(s.r.Left, s.r.Top, s.r.Right, s.r.Btm)
}

// Generates random noise. Not a sensible implementation for any other use case
func (s stubImg) At(x, y int) color.Color {
	return color.RGBA{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: 255,
	}
}

func (s stubImg) ColorModel() color.Model {
	return color.RGBAModel
}

func TestGlyphPrint(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{255, 255, 255, 255})

	g := &GlyphPrint{Img: img, Chars: MakePalette(" #")}
	lines := g.Lines(RegionOf(img))
	require.Len(t, lines, 1)

	want := util.RGB(0, 0, 0, util.Foreground) + " " +
		util.RGB(255, 255, 255, util.Foreground) + "#" +
		string(util.Normalizer)
	assert.Equal(t, want, lines[0])

	g.Bold = true
	g.BG = "1:2:3"
	cell := g.At(1, 0)
	assert.Equal(t, string(util.Bold), cell.Display)
	assert.True(t, strings.HasPrefix(cell.Ink, util.RGB(1, 2, 3, util.Background)))
}

func TestPrintRegion(t *testing.T) {
	r := Region{Right: 4, Btm: 3}
	g := &GlyphPrint{Img: stubImg{r}, Chars: MakePalette("█")}

	var buf bytes.Buffer
	n, err := g.PrintRegion(&buf, r)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
	assert.Equal(t, 12, strings.Count(buf.String(), "█"))
}

func TestRGBSpec(t *testing.T) {
	c, err := RGBSpec("10:20:30").Parse()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, c)

	for _, bad := range []RGBSpec{"", "1:2", "1:2:300", "a:b:c"} {
		_, err := bad.Parse()
		assert.Error(t, err, string(bad))
		assert.Equal(t, color.RGBA{A: 255}, bad.RGBA())
	}
}

func TestCliParse(t *testing.T) {
	var c Cli
	p, err := arg.NewParser(arg.Config{}, &c)
	require.NoError(t, err)
	require.NoError(t, p.Parse([]string{"atlas.png", "--mode", "slice", "-f", "tiff", "--face-size", "256", "--lon", "0", "-b", "--drag", "1", "2", "3", "4"}))

	assert.Equal(t, ModeSlice, c.Mode)
	assert.Equal(t, []string{"atlas.png"}, c.Paths)
	assert.Equal(t, []float64{1, 2, 3, 4}, c.Drag)
	require.NotNil(t, c.Lon)
	assert.Zero(t, *c.Lon)
	assert.Nil(t, c.Lat)
	assert.True(t, c.Bold)

	o := c.Overrides()
	assert.Equal(t, "tiff", o.Format)
	assert.Equal(t, 256, o.FaceSize)
	assert.Empty(t, o.Layout)
	assert.True(t, o.Bold)

	var d Cli
	p, err = arg.NewParser(arg.Config{}, &d)
	require.NoError(t, err)
	require.NoError(t, p.Parse([]string{"a.png"}))
	assert.Equal(t, ModeView, d.Mode)
}

func BenchmarkPrintRegion(b *testing.B) {
	r := Region{Right: 160, Btm: 90}
	g := &GlyphPrint{Img: stubImg{r}, Chars: MakePalette("#")}
	var buf bytes.Buffer
	for n := 0; n < b.N; n++ {
		buf.Reset()
		g.PrintRegion(&buf, r)
	}
}
