package transform

import "errors"

var (
	// ErrSingularMatrix is returned when the reference points do not
	// determine a transform, for example when three of them are collinear.
	ErrSingularMatrix = errors.New("transform: singular matrix")

	// ErrOutOfBounds is returned when a module maps outside the image.
	ErrOutOfBounds = errors.New("transform: module outside image")
)
