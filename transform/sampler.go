package transform

import (
	"math"

	"github.com/ericlevine/qrdecode"
)

// Module reports whether the module at (row, col) is black when viewed
// through t. Centres that land one pixel outside the image are nudged back
// onto its edge; anything further out is ErrOutOfBounds.
func Module(img qrdecode.Bitmap, t Transform, row, col int) (bool, error) {
	p := t.Map(float64(col), float64(row))
	x, ok := nudge(math.Round(p.X), img.Width())
	if !ok {
		return false, ErrOutOfBounds
	}
	y, ok := nudge(math.Round(p.Y), img.Height())
	if !ok {
		return false, ErrOutOfBounds
	}
	return img.IsBlack(y, x), nil
}

func nudge(v float64, limit int) (int, bool) {
	if math.IsNaN(v) || v < -1 || v > float64(limit) {
		return 0, false
	}
	i := int(v)
	switch i {
	case -1:
		i = 0
	case limit:
		i = limit - 1
	}
	return i, true
}
