package brailleart

import "errors"

// Configuration errors returned by New.
var (
	// ErrDimension flags a width or height of less than one character.
	ErrDimension = errors.New("brailleart: width and height must be at least 1")
	// ErrSpacing flags negative tracking or leading.
	ErrSpacing = errors.New("brailleart: tracking and leading must not be negative")
	// ErrThreshold flags a darkness threshold outside [0, 1].
	ErrThreshold = errors.New("brailleart: threshold must be within [0, 1]")
	// ErrEdgeWeight flags a negative edge weight.
	ErrEdgeWeight = errors.New("brailleart: edge weight must not be negative")
)

// ErrResample is returned when an image cannot be resampled onto the dot
// grid, for example when the source is empty.
var ErrResample = errors.New("brailleart: cannot resample image")
