package qrdecode

import "math"

// Bitmap is a binary pixel grid. It is the only view of the image the
// decoder needs.
type Bitmap interface {
	Width() int
	Height() int
	// IsBlack reports whether the pixel at (row, col) is black.
	IsBlack(row, col int) bool
}

// Point is a location in image pixel coordinates.
type Point struct {
	X, Y float64
}

// Distance returns the distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// CrossProductZ computes the z component of the cross product between vectors
// (bX-aX, bY-aY) and (cX-aX, cY-aY).
func CrossProductZ(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
