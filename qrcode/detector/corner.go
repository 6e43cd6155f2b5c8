package detector

import (
	"math"

	"github.com/ericlevine/qrdecode"
)

const (
	// CornerSideLengthDev is the smallest accepted ratio between the
	// shorter and the longer arm of a corner.
	CornerSideLengthDev = 0.8
	// CornerRightAngleDev is the largest accepted |cos| of the angle
	// between the arms.
	CornerRightAngleDev = 0.25
)

// Corner is three finders forming the L of a QR symbol.
type Corner struct {
	TopLeft, TopRight, BottomLeft *Finder

	TopLineLen, LeftLineLen float64
}

// NewCorner tries each of the three finders as the top-left one and
// returns the first arrangement that forms an L, or nil.
func NewCorner(a, b, c *Finder) *Corner {
	for _, tri := range [3][3]*Finder{{a, b, c}, {b, c, a}, {c, a, b}} {
		if corner := testCorner(tri[0], tri[1], tri[2]); corner != nil {
			return corner
		}
	}
	return nil
}

func testCorner(topLeft, p, q *Finder) *Corner {
	origin := topLeft.Center()
	// Image rows grow downwards, so top-right to bottom-left is a positive turn.
	topRight, bottomLeft := p, q
	if qrdecode.CrossProductZ(origin, p.Center(), q.Center()) < 0 {
		topRight, bottomLeft = q, p
	}
	tr, bl := topRight.Center(), bottomLeft.Center()

	top := qrdecode.Distance(origin, tr)
	left := qrdecode.Distance(origin, bl)
	if top == 0 || left == 0 {
		return nil
	}
	if math.Min(top, left) < CornerSideLengthDev*math.Max(top, left) {
		return nil
	}
	cos := ((tr.X-origin.X)*(bl.X-origin.X) + (tr.Y-origin.Y)*(bl.Y-origin.Y)) / (top * left)
	if math.Abs(cos) > CornerRightAngleDev {
		return nil
	}
	return &Corner{
		TopLeft:     topLeft,
		TopRight:    topRight,
		BottomLeft:  bottomLeft,
		TopLineLen:  top,
		LeftLineLen: left,
	}
}

// Module is the mean module size of the three finders.
func (c *Corner) Module() float64 {
	return (c.TopLeft.ModuleSize() + c.TopRight.ModuleSize() + c.BottomLeft.ModuleSize()) / 3
}

// Centers returns the top-left, top-right and bottom-left finder centres.
func (c *Corner) Centers() (topLeft, topRight, bottomLeft qrdecode.Point) {
	return c.TopLeft.Center(), c.TopRight.Center(), c.BottomLeft.Center()
}

// EstimateVersion derives the version from the finder spacing: adjacent
// finder centres are dimension-7 modules apart.
func (c *Corner) EstimateVersion() (int, error) {
	dimension := (c.TopLineLen+c.LeftLineLen)/(2*c.Module()) + 7
	version := (int(math.Round(dimension)) - 15) / 4
	if version > 40 {
		return 0, ErrVersionOutOfRange
	}
	return max(version, 1), nil
}
