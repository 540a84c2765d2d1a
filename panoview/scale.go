package panoview

import (
	"image"
	"image/draw"

	"github.com/nfnt/resize"

	"wombatlord/panoview/cubemap"
)

// OutputDimsOf returns the size img takes when fitted into a box of
// maxW x maxH, keeping its aspect ratio.
func OutputDimsOf(img image.Image, maxW, maxH uint) (w, h uint) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 0, 0
	}
	width, height := float64(b.Dx()), float64(b.Dy())
	scale := min(float64(maxW)/width, float64(maxH)/height)
	return uint(width * scale), uint(height * scale)
}

// ScaleImg fits img into maxW x maxH.
func ScaleImg(img image.Image, maxW, maxH uint) image.Image {
	w, h := OutputDimsOf(img, maxW, maxH)
	return resize.Resize(w, h, img, resize.Lanczos2)
}

// ResizeFaces returns faces scaled to size x size. A size of zero returns
// the faces unchanged.
func ResizeFaces(faces cubemap.Faces, size int) cubemap.Faces {
	if size <= 0 {
		return faces
	}
	out := make(cubemap.Faces, len(faces))
	for id, f := range faces {
		out[id] = &cubemap.FaceImage{ID: id, Image: toRGBA(resize.Resize(uint(size), uint(size), f.Image, resize.Lanczos3))}
	}
	return out
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
