package cubemap

import (
	"errors"
	"fmt"
)

// ErrNoMatch is returned by Detect when no filename matched any face alias.
var ErrNoMatch = errors.New("cubemap: no filename matched a cube face")

// DecodeError is returned when the atlas could not be decoded to pixels.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cubemap: decoding atlas: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// LayoutError is returned for a malformed layout, or one that cannot be
// applied to the given atlas.
type LayoutError struct {
	Layout string
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("cubemap: layout %q: %s", e.Layout, e.Reason)
}
