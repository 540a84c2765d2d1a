package cubemap

import (
	"image"
	"image/draw"
	"io"
	"sync"

	// decoders for SliceReader
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TileSize returns the pixel size of one grid cell for an atlas of the given
// bounds. Sizes are truncated, so atlases whose dimensions are not a
// multiple of the grid lose their rightmost columns and bottom rows.
func (l Layout) TileSize(bounds image.Rectangle) (w, h int) {
	return bounds.Dx() / l.Columns, bounds.Dy() / l.Rows
}

// Slice cuts the atlas into one image per face of the layout. The atlas is
// only read.
func Slice(atlas image.Image, layout Layout) (Faces, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	b := atlas.Bounds()
	tw, th := layout.TileSize(b)
	if tw == 0 || th == 0 {
		return nil, &LayoutError{Layout: layout.Name, Reason: "atlas is smaller than the grid"}
	}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		faces = make(Faces, FaceCount)
	)
	for id, t := range layout.Tiles {
		wg.Add(1)
		go func(id FaceID, t Tile) {
			defer wg.Done()
			origin := b.Min.Add(image.Pt(t.Column*tw, t.Row*th))
			img := extract(atlas, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(tw, th))})

			mu.Lock()
			faces[id] = &FaceImage{ID: id, Image: img}
			mu.Unlock()
		}(id, t)
	}
	wg.Wait()
	return faces, nil
}

// SliceReader decodes an atlas and slices it with the named layout.
func SliceReader(r io.Reader, layoutName string) (Faces, error) {
	layout, err := LookupLayout(layoutName)
	if err != nil {
		return nil, err
	}
	atlas, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return Slice(atlas, layout)
}

// extract copies r out of src into a new zero-origin RGBA image.
func extract(src image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	if rgba, ok := src.(*image.RGBA); ok {
		rowLen := r.Dx() * 4
		for y := 0; y < r.Dy(); y++ {
			so := rgba.PixOffset(r.Min.X, r.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], rgba.Pix[so:so+rowLen])
		}
		return dst
	}
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}
