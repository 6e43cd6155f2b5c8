package detector

import (
	"math"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/transform"
)

// AlignmentSearchFactor scales the sum of a corner's arm lengths into the
// side of the alignment search window.
const AlignmentSearchFactor = 0.3

var alignmentPattern = pattern{sig: alignmentSignature, core: 1}

// alignmentSignature accepts n:1:1:1:n around a known module size. The
// outer black runs may merge with neighbouring modules, so they are only
// bounded below.
func alignmentSignature(lengths [5]int, module float64) (float64, bool) {
	maxDev := SignatureMaxDeviation * module
	if float64(lengths[0]) < module-maxDev || float64(lengths[4]) < module-maxDev {
		return 0, false
	}
	for _, l := range lengths[1:4] {
		if math.Abs(float64(l)-module) > maxDev {
			return 0, false
		}
	}
	return float64(lengths[1]+lengths[2]+lengths[3]) / 3, true
}

// FindAlignments searches around the position t predicts for the
// bottom-right alignment pattern of a dimension-module symbol and returns
// the candidates in scan order.
func FindAlignments(img qrdecode.Bitmap, t transform.Transform, c *Corner, dimension int) []*Finder {
	est := t.Map(float64(dimension-7), float64(dimension-7))
	half := int(math.Round(AlignmentSearchFactor*(c.TopLineLen+c.LeftLineLen))) / 2
	x, y := int(math.Round(est.X)), int(math.Round(est.Y))
	window := rect{left: x - half, top: y - half, right: x + half + 1, bottom: y + half + 1}
	return locate(img, window, alignmentPattern, c.Module())
}
