package panoview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"wombatlord/panoview/src/util"
)

// PaletteMap is a convenient alias for a length 256 rune array, one glyph
// per brightness level.
type PaletteMap [256]rune

// MakePalette stretches glyphs, darkest first, over all 256 brightness
// levels.
func MakePalette(glyphs string) PaletteMap {
	pal := PaletteMap{}
	copy(pal[:], []rune(util.Stretch(glyphs, 255)))
	return pal
}

// GlyphPrint turns a frame into terminal cells: every pixel becomes a glyph
// picked by brightness and painted with the pixel's color.
type GlyphPrint struct {
	Img   image.Image
	Chars PaletteMap
	Bold  bool
	BG    RGBSpec
}

// CellSpec is the terminal printout equivalent of a pixel, however it has the extra
// parameter of the text to be displayed in the terminal
type CellSpec struct {
	Display, Ink, Glyph string
}

// String generates the terminal output
func (c CellSpec) String() string { return c.Display + c.Ink + c.Glyph }

// Bounds is the size of the GlyphPrint
func (g *GlyphPrint) Bounds() image.Rectangle {
	return g.Img.Bounds()
}

// Chroma is where all the colour transformation logic goes
func (g *GlyphPrint) Chroma(c color.Color) string {
	rgb := color.RGBAModel.Convert(c).(color.RGBA)
	ink := util.RGB(rgb.R, rgb.G, rgb.B, util.Foreground)
	if g.BG != "" {
		bg := g.BG.RGBA()
		ink = util.RGB(bg.R, bg.G, bg.B, util.Background) + ink
	}
	return ink
}

// Typeset is where the printable glyph is chosen
func (g *GlyphPrint) Typeset(c color.Color) string {
	glyphIdx := color.GrayModel.Convert(c).(color.Gray).Y
	return string(g.Chars[glyphIdx])
}

func (g *GlyphPrint) At(x, y int) CellSpec {
	var display util.Painter
	if g.Bold {
		display = util.Bold
	}
	pix := g.Img.At(x, y)
	return CellSpec{string(display), g.Chroma(pix), g.Typeset(pix)}
}

// Lines renders the region as one string per row of cells.
func (g *GlyphPrint) Lines(region Region) []string {
	lines := make([]string, 0, max(0, region.Btm-region.Top))
	var sb strings.Builder
	for y := region.Top; y < region.Btm; y++ {
		sb.Reset()
		for x := region.Left; x < region.Right; x++ {
			sb.WriteString(g.At(x, y).String())
		}
		sb.WriteString(string(util.Normalizer))
		lines = append(lines, sb.String())
	}
	return lines
}

// PrintRegion prints the region to w and returns the number of lines
// written.
func (g *GlyphPrint) PrintRegion(w io.Writer, region Region) (int, error) {
	lines := g.Lines(region)
	_, err := fmt.Fprint(w, strings.Join(lines, "\n"))
	return len(lines), err
}

// RGBSpec is a color written as "r:g:b".
type RGBSpec string

// Parse validates the spec and returns its color.
func (r RGBSpec) Parse() (color.RGBA, error) {
	parts := strings.SplitN(string(r), ":", 3)
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("color %q: want r:g:b", string(r))
	}
	rgb := [3]uint8{}
	for i := range rgb {
		c, err := strconv.ParseUint(parts[i], 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", string(r), err)
		}
		rgb[i] = uint8(c)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

// RGBA returns the color, black if the spec does not parse.
func (r RGBSpec) RGBA() color.RGBA {
	c, err := r.Parse()
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}
