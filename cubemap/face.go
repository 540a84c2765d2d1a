// Package cubemap slices atlas images into cube faces and identifies
// separately supplied face files by name.
package cubemap

import (
	"fmt"
	"image"
)

// FaceID names one of the six directions of a cubemap.
type FaceID int

const (
	PosX FaceID = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// FaceCount is the number of faces on a cube.
const FaceCount = 6

// FaceIDs lists every face in declaration order. This is also the order a
// cube texture expects its six images in.
var FaceIDs = [FaceCount]FaceID{PosX, NegX, PosY, NegY, PosZ, NegZ}

var faceNames = [FaceCount]string{
	PosX: "posx",
	NegX: "negx",
	PosY: "posy",
	NegY: "negy",
	PosZ: "posz",
	NegZ: "negz",
}

func (f FaceID) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FaceID(%d)", int(f))
	}
	return faceNames[f]
}

// Valid reports whether f is one of the six faces.
func (f FaceID) Valid() bool { return f >= PosX && f <= NegZ }

// MarshalText lets faces be used as JSON object keys.
func (f FaceID) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid face %d", int(f))
	}
	return []byte(f.String()), nil
}

// FaceImage is a face's pixels. It is not modified after creation.
type FaceImage struct {
	ID    FaceID
	Image *image.RGBA
}

// Faces maps each produced face to its image.
type Faces map[FaceID]*FaceImage

// Ordered returns the face images in cube texture order. Faces that are not
// present are nil.
func (fs Faces) Ordered() [FaceCount]image.Image {
	var out [FaceCount]image.Image
	for i, id := range FaceIDs {
		if f, ok := fs[id]; ok && f != nil {
			out[i] = f.Image
		}
	}
	return out
}
