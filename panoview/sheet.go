package panoview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"wombatlord/panoview/cubemap"
)

// TypeFace is the encapsulation of all of the information about the
// geometry & scale of the font.
type TypeFace struct {
	Font *truetype.Font
	Face font.Face
	Size float64
}

// LineHeight returns the height of one line of text in pixels.
func (tf *TypeFace) LineHeight() int {
	m := tf.Face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

var (
	labelFont     *truetype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

// LoadTypeFace returns the Go regular font at size points.
func LoadTypeFace(size float64) (*TypeFace, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = freetype.ParseFont(goregular.TTF)
	})
	if labelFontErr != nil {
		return nil, labelFontErr
	}
	face := truetype.NewFace(labelFont, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	return &TypeFace{Font: labelFont, Face: face, Size: size}, nil
}

// NewCtx returns a freetype context drawing white text onto dst.
func NewCtx(tf *TypeFace, dst draw.Image) *freetype.Context {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(tf.Font)
	ctx.SetFontSize(tf.Size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)
	return ctx
}

// LeftToRightConcat concatenates the images passed with imgs[0] being the
// leftmost. Every image is placed in a cell as wide as the first one.
func LeftToRightConcat(imgs ...image.Image) (*image.RGBA, error) {
	if len(imgs) == 0 {
		return nil, fmt.Errorf("LeftToRightConcat: must supply at least one image")
	}
	cellWidth := imgs[0].Bounds().Dx()
	height := 0
	for _, nxt := range imgs {
		height = max(height, nxt.Bounds().Dy())
	}

	concat := image.NewRGBA(image.Rect(0, 0, cellWidth*len(imgs), height))
	for i, nxt := range imgs {
		r := image.Rect(0, 0, nxt.Bounds().Dx(), nxt.Bounds().Dy()).Add(image.Pt(i*cellWidth, 0))
		draw.Draw(concat, r, nxt, nxt.Bounds().Min, draw.Src)
	}
	return concat, nil
}

// ContactSheet lays the faces out in cube texture order, each scaled into a
// cell x cell square with its name printed underneath. Missing faces leave
// their cell dark.
func ContactSheet(faces cubemap.Faces, cell int) (*image.RGBA, error) {
	if cell <= 0 {
		return nil, fmt.Errorf("contact sheet cell size must be positive, got %d", cell)
	}
	tf, err := LoadTypeFace(max(8, float64(cell)/8))
	if err != nil {
		return nil, fmt.Errorf("loading label font: %w", err)
	}
	labelH := tf.LineHeight() + 4

	cells := make([]image.Image, 0, cubemap.FaceCount)
	for i, img := range faces.Ordered() {
		id := cubemap.FaceIDs[i]
		c := image.NewRGBA(image.Rect(0, 0, cell, cell+labelH))
		draw.Draw(c, c.Bounds(), image.NewUniform(color.RGBA{24, 24, 24, 255}), image.Point{}, draw.Src)
		if img != nil {
			thumb := ScaleImg(img, uint(cell), uint(cell))
			off := image.Pt((cell-thumb.Bounds().Dx())/2, (cell-thumb.Bounds().Dy())/2)
			draw.Draw(c, thumb.Bounds().Sub(thumb.Bounds().Min).Add(off), thumb, thumb.Bounds().Min, draw.Src)
		}

		ctx := NewCtx(tf, c)
		if _, err := ctx.DrawString(id.String(), freetype.Pt(4, cell+labelH-4-tf.Face.Metrics().Descent.Ceil())); err != nil {
			return nil, fmt.Errorf("labelling %s: %w", id, err)
		}
		cells = append(cells, c)
	}
	return LeftToRightConcat(cells...)
}
