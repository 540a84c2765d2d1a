package panoview

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"wombatlord/panoview/cubemap"
	"wombatlord/panoview/src/logger"
)

// Encoder writes an image in one file format.
type Encoder func(w io.Writer, img image.Image) error

var encoders = map[string]Encoder{
	"png":  png.Encode,
	"jpeg": encodeJPEG,
	"bmp":  bmp.Encode,
	"tiff": encodeTIFF,
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// EncoderFor returns the encoder and file extension for a format name.
func EncoderFor(format string) (Encoder, string, error) {
	format = strings.ToLower(format)
	if format == "jpg" {
		format = "jpeg"
	}
	enc, ok := encoders[format]
	if !ok {
		return nil, "", fmt.Errorf("unsupported format %q", format)
	}
	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}
	return enc, ext, nil
}

// FaceFileName is the name a face is written under.
func FaceFileName(prefix string, id cubemap.FaceID, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, id, ext)
}

// WriteFaces writes each face present to dir as prefix_<face>.<ext> and
// returns the written paths in cube texture order.
func WriteFaces(dir, prefix string, faces cubemap.Faces, format string) ([]string, error) {
	enc, ext, err := EncoderFor(format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var written []string
	for _, id := range cubemap.FaceIDs {
		f, ok := faces[id]
		if !ok {
			continue
		}
		path := filepath.Join(dir, FaceFileName(prefix, id, ext))
		if err := WriteImage(path, f.Image, enc); err != nil {
			return written, err
		}
		logger.Debug("wrote face", zap.Stringer("face", id), zap.String("path", path))
		written = append(written, path)
	}
	return written, nil
}

// WriteImage encodes img to a new file at path.
func WriteImage(path string, img image.Image, enc Encoder) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if err := enc(file, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// Prefix derives the output prefix from an input path: its base name
// without extension.
func Prefix(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
