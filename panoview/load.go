package panoview

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	"go.uber.org/zap"

	"wombatlord/panoview/cubemap"
	"wombatlord/panoview/src/logger"

	// decoders for dropped files
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoFiles is returned when Load is given nothing to load.
var ErrNoFiles = errors.New("no files dropped")

// Kind says what a Source holds.
type Kind int

const (
	Panorama Kind = iota
	CubeAtlas
	CubeFaces
)

func (k Kind) String() string {
	switch k {
	case Panorama:
		return "panorama"
	case CubeAtlas:
		return "cube atlas"
	case CubeFaces:
		return "cube faces"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// atlasAspect is the width/height of a 4x3 atlas. Single images within
// atlasTolerance of it are treated as atlases.
const (
	atlasAspect    = 4.0 / 3.0
	atlasTolerance = 0.1
)

// Source is a loaded environment: either a panorama or a set of cube faces.
type Source struct {
	Kind     Kind
	Panorama image.Image
	Faces    cubemap.Faces
	// Assignment is set for CubeFaces sources.
	Assignment cubemap.Assignment
}

// Classify decides whether a single image is a cube atlas or a panorama
// from its aspect ratio.
func Classify(b image.Rectangle) Kind {
	if b.Dy() == 0 {
		return Panorama
	}
	aspect := float64(b.Dx()) / float64(b.Dy())
	if math.Abs(atlasAspect-aspect) < atlasTolerance {
		return CubeAtlas
	}
	return Panorama
}

// Load loads dropped files. A single file is a panorama or an atlas sliced
// with layoutName; several files are cube faces identified by name. Faces
// that cannot be identified are left unset.
func Load(paths []string, layoutName string) (*Source, error) {
	switch len(paths) {
	case 0:
		return nil, ErrNoFiles
	case 1:
		return loadSingle(paths[0], layoutName)
	default:
		return loadFaces(paths)
	}
}

func loadSingle(path, layoutName string) (*Source, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	kind := Classify(img.Bounds())
	logger.Debug("classified image",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Stringer("kind", kind))

	if kind == Panorama {
		return &Source{Kind: Panorama, Panorama: img}, nil
	}
	layout, err := cubemap.LookupLayout(layoutName)
	if err != nil {
		return nil, err
	}
	faces, err := cubemap.Slice(img, layout)
	if err != nil {
		return nil, fmt.Errorf("slicing %s: %w", path, err)
	}
	return &Source{Kind: CubeAtlas, Faces: faces}, nil
}

func loadFaces(paths []string) (*Source, error) {
	assignment, err := cubemap.DetectPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("could not identify cubemap faces from the dropped files: %w", err)
	}
	if missing := assignment.Missing(); len(missing) > 0 {
		logger.Warn("cube faces missing", zap.Stringers("faces", missing))
	}

	faces := make(cubemap.Faces, len(assignment))
	for _, id := range cubemap.FaceIDs {
		path, ok := assignment.Get(id)
		if !ok {
			continue
		}
		img, err := DecodeFile(path)
		if err != nil {
			return nil, fmt.Errorf("face %s: %w", id, err)
		}
		faces[id] = &cubemap.FaceImage{ID: id, Image: toRGBA(img)}
		logger.Debug("loaded face", zap.Stringer("face", id), zap.String("path", path))
	}
	return &Source{Kind: CubeFaces, Faces: faces, Assignment: assignment}, nil
}

// DecodeFile reads and decodes an image. Decoding failures are reported as
// *cubemap.DecodeError.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, &cubemap.DecodeError{Err: err})
	}
	return img, nil
}
