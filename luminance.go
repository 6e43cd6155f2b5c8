package qrdecode

// LuminanceSource provides access to greyscale luminance values for an image.
type LuminanceSource interface {
	// Matrix returns the entire luminance matrix, row-major.
	Matrix() []byte

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int
}
